package urlhandler

import "errors"

var errEmptyURL = errors.New("URL is empty or only whitespace")
