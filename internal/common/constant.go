package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// Cache keys of the list reads.
const (
	CacheKeySections = "sections"
	CacheKeyEbooks   = "ebooks"
)

// MaxOpenRequests is how many ebook requests a user may hold in the
// "requested" state at once.
const MaxOpenRequests = 5
