package service

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
)

// InviteSignature signs every invite email.
const InviteSignature = "Krishna Teja"

//go:embed templates/invite.html
var templateFS embed.FS

var inviteTemplate = template.Must(template.ParseFS(templateFS, "templates/invite.html"))

type inviteEmail struct {
	EventName string
	FirstName string
	DateRange string
	Location  string
	Website   string
	Signature string
}

func renderInviteEmail(data inviteEmail) (string, error) {
	var buf bytes.Buffer
	if err := inviteTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func firstName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return full
	}
	return fields[0]
}
