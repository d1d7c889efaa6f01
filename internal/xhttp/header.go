package xhttp

import (
	"net/http"
)

const (
	XForwardedFor    = "X-Forwarded-For"
	XContentTypeOpts = "X-Content-Type-Options"
	XFrameOpts       = "X-Frame-Options"
	XXSSProtection   = "X-Xss-Protection"
	ReferrerPolicy   = "Referrer-Policy"
	XRequestID       = "X-Request-ID"
)

const (
	ContentType  = "Content-Type"
	Accept       = "Accept"
	CacheControl = "Cache-Control"
)

const applicationJSON = "application/json"

func SetHeaderRequestID(w http.ResponseWriter, requestID string) {
	w.Header().Set(XRequestID, requestID)
}

func SetHeaderContentTypeApplicationJSON(w http.ResponseWriter) {
	w.Header().Set(ContentType, applicationJSON)
}

func SetHeaderNoStore(w http.ResponseWriter) {
	w.Header().Set(CacheControl, "no-store")
}

func SetRequestHeaderAcceptJSON(r *http.Request) {
	r.Header.Set(Accept, applicationJSON)
}
