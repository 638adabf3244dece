package handler

const (
	// RootPath is the root path the route group.
	RootPath = "/"

	// APIPath prefixes every JSON endpoint.
	APIPath = RootPath + "api"

	// DateFormat is the layout of created_at and updated_at in responses.
	DateFormat = "2006/01/02"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"
)
