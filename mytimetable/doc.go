// Package mytimetable provides a client for the MyTimetable REST API.
//
// The client turns typed queries into GET requests against a versioned endpoint
// (e.g. https://timetable.example.ac.uk/api/v0/timetables), sends them through a
// pooled HTTP transport and maps the root-wrapped JSON responses onto the types of
// the model package.
//
// # Usage
//
//	cfg, err := config.Load("mytimetable.properties")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := mytimetable.NewClient(cfg, zerolog.New(os.Stderr))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	timetables, err := client.GetTimetables(ctx, request.TimetablesQuery{
//		Type:       "module",
//		DataSource: "2017",
//		Filters: request.SortedFilters(map[string]model.TimetableFilterOption{
//			"department": {ID: "646ADCA666D4A88402CA46C26A73803C"},
//		}),
//		Limit: 10,
//	})
//
// # Endpoints
//
// Configuration may list several endpoint URIs. Requests go to the endpoint that
// answered last; when it cannot be reached the next one is tried. An HTTP error
// status never triggers a failover. No retries are performed beyond that.
//
// # Error Handling
//
//   - ErrInvalidArgument: a required input is missing; no request was sent
//   - ErrUnsupportedVersion: the configured server version lacks the operation
//   - StatusError: the API answered with a non-2xx status
//   - TransportError: no endpoint could be reached or a timeout expired
//   - StreamMappingError: the response body could not be decoded
//
// Use errors.Is and errors.As to classify them:
//
//	var statusErr *mytimetable.StatusError
//	if errors.As(err, &statusErr) && statusErr.IsUnauthorized() {
//		// Handle auth failure
//	}
//
// # Concurrency
//
// A Client is safe for concurrent use. The pooled transport is bounded by
// apiMaxConnections, which also limits GetUpcomingEventsForUsers. Close releases idle
// connections; requests already in flight are governed by the transport.
package mytimetable
