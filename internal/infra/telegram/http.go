package telegram

import (
	"net/http"
	"time"
)

const defaultSendTimeout = time.Minute

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &http.Client{Timeout: timeout}
}
