package memory

import (
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/identity-merge/internal/model"
)

type accountRow struct {
	model.Account
	seq int64
}

type loginRow struct {
	accountID uuid.UUID
	login     model.LoginInfo
}

type claimRow struct {
	accountID uuid.UUID
	claim     model.Claim
}

// state is one consistent snapshot of every table.
type state struct {
	accounts   map[uuid.UUID]accountRow
	roles      map[uuid.UUID]map[string]struct{}
	logins     []loginRow
	claims     []claimRow
	emails     []model.EmailRecord
	accountSeq int64
	emailSeq   int64
}

func newState() *state {
	return &state{
		accounts: make(map[uuid.UUID]accountRow),
		roles:    make(map[uuid.UUID]map[string]struct{}),
	}
}

func (s *state) clone() *state {
	c := &state{
		accounts:   make(map[uuid.UUID]accountRow, len(s.accounts)),
		roles:      make(map[uuid.UUID]map[string]struct{}, len(s.roles)),
		logins:     append([]loginRow(nil), s.logins...),
		claims:     append([]claimRow(nil), s.claims...),
		emails:     make([]model.EmailRecord, len(s.emails)),
		accountSeq: s.accountSeq,
		emailSeq:   s.emailSeq,
	}
	for id, row := range s.accounts {
		row.PasswordHash = append([]byte(nil), row.PasswordHash...)
		c.accounts[id] = row
	}
	for id, set := range s.roles {
		cs := make(map[string]struct{}, len(set))
		for r := range set {
			cs[r] = struct{}{}
		}
		c.roles[id] = cs
	}
	for i, e := range s.emails {
		c.emails[i] = copyRecord(e)
	}
	return c
}

func copyRecord(e model.EmailRecord) model.EmailRecord {
	if e.LoginProvider != nil {
		p := *e.LoginProvider
		e.LoginProvider = &p
	}
	if e.LoginProviderKey != nil {
		k := *e.LoginProviderKey
		e.LoginProviderKey = &k
	}
	return e
}

func (s *state) touch(id uuid.UUID) {
	row := s.accounts[id]
	row.UpdatedAt = time.Now()
	s.accounts[id] = row
}

func (s *state) findLogin(provider, providerKey string) (int, bool) {
	for i, l := range s.logins {
		if l.login.Matches(provider, providerKey) {
			return i, true
		}
	}
	return -1, false
}

// deleteAccount removes the account and every row referencing it.
func (s *state) deleteAccount(id uuid.UUID) {
	delete(s.accounts, id)
	delete(s.roles, id)

	logins := s.logins[:0]
	for _, l := range s.logins {
		if l.accountID != id {
			logins = append(logins, l)
		}
	}
	s.logins = logins

	claims := s.claims[:0]
	for _, c := range s.claims {
		if c.accountID != id {
			claims = append(claims, c)
		}
	}
	s.claims = claims

	emails := s.emails[:0]
	for _, e := range s.emails {
		if e.AccountID != id {
			emails = append(emails, e)
		}
	}
	s.emails = emails
}
