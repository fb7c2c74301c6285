package constants

// Cookie names used in the application
const (
	// CookieMessageSubmitted marks a client that already submitted within the cooldown window
	CookieMessageSubmitted = "messageSubmitted"
	CookieMessageValue     = "true"

	// Cookie paths
	CookiePathRoot = "/" // Root path for cookies available throughout the site

	// Cookie duration in seconds
	CookieDuration6h = 21600 // 6 hours
)
