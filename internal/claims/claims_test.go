package claims

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/identity-merge/internal/model"
)

func TestFindEmail(t *testing.T) {
	tests := []struct {
		name   string
		claims []model.Claim
		want   string
		wantOK bool
	}{
		{
			name:   "empty",
			claims: nil,
			wantOK: false,
		},
		{
			name:   "short email wins over upn",
			claims: []model.Claim{{Type: TypeUPN, Value: "upn@corp"}, {Type: "email", Value: "a@x.com"}},
			want:   "a@x.com",
			wantOK: true,
		},
		{
			name:   "short email wins over emailaddress",
			claims: []model.Claim{{Type: TypeEmail, Value: "long@x.com"}, {Type: "email", Value: "short@x.com"}},
			want:   "short@x.com",
			wantOK: true,
		},
		{
			name: "short email wins when every type is present",
			claims: []model.Claim{
				{Type: "preferred_username", Value: "bob"},
				{Type: TypeUPN, Value: "bob@corp"},
				{Type: TypeEmail, Value: "long@x.com"},
				{Type: "email", Value: "short@x.com"},
			},
			want:   "short@x.com",
			wantOK: true,
		},
		{
			name:   "emailaddress before upn",
			claims: []model.Claim{{Type: TypeUPN, Value: "upn@corp"}, {Type: TypeEmail, Value: "b@x.com"}},
			want:   "b@x.com",
			wantOK: true,
		},
		{
			name:   "preferred username last",
			claims: []model.Claim{{Type: "preferred_username", Value: "bob"}},
			want:   "bob",
			wantOK: true,
		},
		{
			name:   "upn before preferred username",
			claims: []model.Claim{{Type: "preferred_username", Value: "bob"}, {Type: TypeUPN, Value: "bob@corp"}},
			want:   "bob@corp",
			wantOK: true,
		},
		{
			name:   "unrelated claims only",
			claims: []model.Claim{{Type: "name", Value: "Bob"}, {Type: "sub", Value: "1"}},
			wantOK: false,
		},
		{
			name:   "empty value still present",
			claims: []model.Claim{{Type: "email", Value: ""}, {Type: TypeUPN, Value: "x"}},
			want:   "",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindEmail(tt.claims)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindSubject(t *testing.T) {
	c, ok := FindSubject([]model.Claim{{Type: TypeNameIdentifier, Value: "n"}, {Type: "sub", Value: "s"}})
	assert.True(t, ok)
	assert.Equal(t, "s", c.Value)

	c, ok = FindSubject([]model.Claim{{Type: TypeNameIdentifier, Value: "n"}})
	assert.True(t, ok)
	assert.Equal(t, "n", c.Value)

	_, ok = FindSubject([]model.Claim{{Type: "email", Value: "e"}})
	assert.False(t, ok)
}

func TestWithout(t *testing.T) {
	in := []model.Claim{{Type: "sub", Value: "1"}, {Type: "email", Value: "e"}, {Type: "sub", Value: "1"}}

	out := Without(in, model.Claim{Type: "sub", Value: "1"})

	assert.Equal(t, []model.Claim{{Type: "email", Value: "e"}, {Type: "sub", Value: "1"}}, out)
	assert.Len(t, in, 3)
}

func TestFind(t *testing.T) {
	v, ok := Find([]model.Claim{{Type: "name", Value: "Bob"}}, "name")
	assert.True(t, ok)
	assert.Equal(t, "Bob", v)

	_, ok = Find(nil, "name")
	assert.False(t, ok)
}
