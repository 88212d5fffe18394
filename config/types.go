package config

import "time"

// Property keys
const (
	KeyAPIKey                     = "apiKey"
	KeyAPIEndpointURIs            = "apiEndpointUris"
	KeyAPISSLCNCheck              = "apiSslCnCheck"
	KeyAPIConnectTimeout          = "apiConnectTimeout"
	KeyAPISocketTimeout           = "apiSocketTimeout"
	KeyAPIMaxConnections          = "apiMaxConnections"
	KeyAPIEnableGzip              = "apiEnableGzip"
	KeyMyTimetableVersion         = "myTimetableVersion"
	KeyApplicationURI             = "applicationUri"
	KeyApplicationTarget          = "applicationTarget"
	KeyMaxNumberOfEvents          = "maxNumberOfEvents"
	KeyDefaultNumberOfEvents      = "defaultNumberOfEvents"
	KeyUsernameDomainPrefix       = "usernameDomainPrefix"
	KeyUsernamePostfix            = "usernamePostfix"
	KeyTimetableTypes             = "timetableTypes"
	KeyShowActivityType           = "showActivityType"
	KeyUnknownLocationDescription = "unknownLocationDescription"
)

// DefaultTimetableTypes are all non-location timetable types
var DefaultTimetableTypes = []string{
	"module", "pos", "posgroup", "studentsetgroup", "posss",
	"student", "staff", "activitygroup", "modulepos", "studentset",
}

// Configuration holds the connection, auth and presentation settings of a client
type Configuration struct {
	// APIKey is sent with every request. It should have elevated access.
	APIKey string
	// APIEndpointURIs are candidate base URIs, e.g. https://timetable.example.ac.uk/api/.
	// Tried in order until one is reachable.
	APIEndpointURIs []string
	// APISSLCNCheck enables TLS hostname verification.
	APISSLCNCheck bool
	// APIConnectTimeout in milliseconds.
	APIConnectTimeout int
	// APISocketTimeout in milliseconds. It bounds the wait for response headers;
	// reading the body has no overall limit beyond the request context.
	APISocketTimeout int
	// APIMaxConnections bounds the connection pool.
	APIMaxConnections int
	APIEnableGzip     bool
	// MyTimetableVersion is the server version the client talks to.
	MyTimetableVersion string

	ApplicationURI    string
	ApplicationTarget string

	MaxNumberOfEvents     int
	DefaultNumberOfEvents int

	UsernameDomainPrefix string
	UsernamePostfix      string

	// TimetableTypes restricts personal timetables to these types. Empty means all.
	TimetableTypes []string

	ShowActivityType           bool
	UnknownLocationDescription string
}

// Default returns a configuration with every field set to its default
func Default() *Configuration {
	return &Configuration{
		APIEndpointURIs:       []string{},
		APISSLCNCheck:         true,
		APIConnectTimeout:     1000,
		APISocketTimeout:      10000,
		APIMaxConnections:     20,
		APIEnableGzip:         true,
		MyTimetableVersion:    "3.0.0",
		ApplicationTarget:     "_blank",
		MaxNumberOfEvents:     5,
		DefaultNumberOfEvents: 5,
		TimetableTypes:        append([]string(nil), DefaultTimetableTypes...),
		ShowActivityType:      true,
	}
}

// ConnectTimeout returns the connect timeout as a duration
func (c *Configuration) ConnectTimeout() time.Duration {
	return time.Duration(c.APIConnectTimeout) * time.Millisecond
}

// SocketTimeout returns the socket read timeout as a duration
func (c *Configuration) SocketTimeout() time.Duration {
	return time.Duration(c.APISocketTimeout) * time.Millisecond
}

// DecorateUsername applies the configured domain prefix and postfix to a username
func (c *Configuration) DecorateUsername(username string) string {
	if c.UsernameDomainPrefix != "" {
		username = c.UsernameDomainPrefix + `\` + username
	}
	return username + c.UsernamePostfix
}

// EventLimit returns the number of events to request, never more than MaxNumberOfEvents.
// Returns 0 when neither count is positive.
func (c *Configuration) EventLimit() int {
	limit := c.DefaultNumberOfEvents
	if c.MaxNumberOfEvents > 0 && (limit <= 0 || limit > c.MaxNumberOfEvents) {
		limit = c.MaxNumberOfEvents
	}
	return max(limit, 0)
}
