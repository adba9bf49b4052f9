package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallback(t *testing.T) {
	tests := []struct {
		name    string
		content Content
		want    string
	}{
		{"text is its own fallback", Text{Body: "hello"}, "hello"},
		{"attachment", Attachment{Filename: "Hello.jpg"}, "[attachment: Hello.jpg]"},
		{"unnamed attachment", Attachment{}, "[attachment]"},
		{"reaction", Reaction{Emoji: []rune("👍")}, "[reaction: 👍]"},
		{"labelled location", Location{Label: strPtr("Berlin")}, "[location: Berlin]"},
		{"location", Location{Latitude: 52.520008, Longitude: 13.404954}, "[location: 52.520008, 13.404954]"},
		{"edit", Edit{New: Text{Body: "fixed"}}, "[edited] fixed"},
		{"delete", Delete{}, "[message deleted]"},
		{"poll", Poll{Question: "Lunch?", Options: []string{"pizza", "sushi", "tacos"}}, "[poll] Lunch? pizza, sushi, or tacos"},
		{"poll of two", Poll{Question: "Tea?", Options: []string{"yes", "no"}}, "[poll] Tea? yes or no"},
		{"rename", GroupOperation{Op: GroupRename, Operands: [][]byte{[]byte("Crew")}}, "[group: renamed to Crew]"},
		{"add one", GroupOperation{Op: GroupAddMembers, Operands: [][]byte{{1}}}, "[group: 1 member added]"},
		{"remove two", GroupOperation{Op: GroupRemoveMembers, Operands: [][]byte{{1}, {2}}}, "[group: 2 members removed]"},
		{"admins", GroupOperation{Op: GroupChangeAdmins}, "[group: admins changed]"},
		{"unknown group op", GroupOperation{Op: 9}, "[group operation]"},
		{"receipt", Receipt{Statuses: make([]MessageStatus, 3)}, "[receipt: 3 messages]"},
		{"choose one", Multipart{Semantics: ChooseOne, Parts: partsOf(Text{Body: "a"}, Text{Body: "b"})}, "a"},
		{"process all", Multipart{Semantics: ProcessAll, Parts: partsOf(Text{Body: "a"}, Delete{})}, "a\n[message deleted]"},
		{"empty multipart", Multipart{}, "[multipart]"},
		{"unknown", Unknown{ID: 500}, "[unsupported content]"},
		{"nil", nil, "[unsupported content]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fallback(tt.content))
			assert.Equal(t, Fallback(tt.content), Fallback(tt.content))
		})
	}
}
