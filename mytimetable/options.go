package mytimetable

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	doer      Doer
	userAgent string
}

// WithHTTPClient replaces the pooled transport built from the configuration.
// Timeouts and pool limits are then the responsibility of the given client.
func WithHTTPClient(doer Doer) Option {
	return func(o *clientOptions) {
		if doer != nil {
			o.doer = doer
		}
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}
