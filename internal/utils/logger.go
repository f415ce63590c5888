package utils

import (
	"log"
	"strings"
)

// LogEvent prints a standardized domain log line. Module is the subsystem
// (booking, ledger, docs); message should be a short key=value summary and
// never contain passenger documents or credentials.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}
