package audit

import "fmt"

// AuthenticateEvent records a login attempt, via session form or API token
// issuance.
type AuthenticateEvent struct {
	Username string
	ClientIP string
	Success  bool
}

func (e AuthenticateEvent) MessageID() string { return "authn" }

func (e AuthenticateEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s successfully authenticated from %s", e.Username, e.ClientIP)
	}
	return fmt.Sprintf("%s failed to authenticate from %s", e.Username, e.ClientIP)
}

func (e AuthenticateEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

// RegisterEvent records a new account registration.
type RegisterEvent struct {
	Username string
	UserID   int64
}

func (e RegisterEvent) MessageID() string { return "register" }

func (e RegisterEvent) Message() string {
	return fmt.Sprintf("user %s registered with id %d", e.Username, e.UserID)
}

func (e RegisterEvent) Severity() Severity { return SeverityNotice }

// AcronymEvent records a create, update or delete of an acronym.
type AcronymEvent struct {
	Action    string // "create", "update" or "delete"
	AcronymID int64
	Username  string
}

func (e AcronymEvent) MessageID() string { return "acronym-" + e.Action }

func (e AcronymEvent) Message() string {
	return fmt.Sprintf("user %s performed %s on acronym %d", e.Username, e.Action, e.AcronymID)
}

func (e AcronymEvent) Severity() Severity { return SeverityInfo }
