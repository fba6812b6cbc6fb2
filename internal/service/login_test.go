package service

import (
	"context"
	"errors"
	"testing"

	"github.com/seaquill/ferrylink/internal/errs"
	"github.com/seaquill/ferrylink/internal/model"
	"github.com/seaquill/ferrylink/internal/session"
)

type fakeAuth struct {
	res model.AuthResult
	err error

	calls int
}

var _ Authenticator = (*fakeAuth)(nil)

func (f *fakeAuth) Login(context.Context, model.Channel, string, string) (model.AuthResult, error) {
	f.calls++
	return f.res, f.err
}

func TestLogin_ValidationShortCircuitsNetwork(t *testing.T) {
	t.Parallel()
	api := &fakeAuth{}
	s := NewLoginService(api, session.NewMemory())

	cases := []struct{ email, pwd string }{
		{"", "secret"},
		{"a@x.com", ""},
		{"   ", "secret"},
		{"a@x.com", "   "},
	}
	for _, c := range cases {
		_, err := s.Login(context.Background(), model.ChannelPassenger, c.email, c.pwd)
		if !errors.Is(err, errs.ErrValidation) {
			t.Fatalf("login(%q, %q): want ErrValidation, got %v", c.email, c.pwd, err)
		}
	}
	if api.calls != 0 {
		t.Fatalf("backend was called %d times, want 0", api.calls)
	}
}

func TestLogin_UnknownChannelRejected(t *testing.T) {
	t.Parallel()
	api := &fakeAuth{}
	s := NewLoginService(api, session.NewMemory())

	_, err := s.Login(context.Background(), model.Channel("pirate"), "a@x.com", "secret")
	if !errors.Is(err, errs.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	if api.calls != 0 {
		t.Fatalf("backend called for invalid channel")
	}
}

func TestLogin_StaffEndToEnd(t *testing.T) {
	t.Parallel()
	api := &fakeAuth{res: model.AuthResult{
		Token:       "abc",
		DisplayName: "Jo",
		RawRole:     "operating",
	}}
	store := session.NewMemory()
	s := NewLoginService(api, store)

	target, err := s.Login(context.Background(), model.ChannelStaff, "ops@x.com", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if target != model.TargetStaffHome {
		t.Fatalf("target = %q, want staff home", target)
	}

	sess, err := store.Get(context.Background())
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if sess.Role != model.RoleStaff {
		t.Fatalf("role = %q", sess.Role)
	}
	if sess.StaffToken != "abc" || sess.Token != "" {
		t.Fatalf("staff token must land in the staff slot: %+v", sess)
	}
	if sess.DisplayName != "Jo" {
		t.Fatalf("display name = %q", sess.DisplayName)
	}
}

func TestLogin_PassengerUsesStandardSlot(t *testing.T) {
	t.Parallel()
	api := &fakeAuth{res: model.AuthResult{Token: "t1", DisplayName: "Ann", RawRole: "user"}}
	store := session.NewMemory()
	s := NewLoginService(api, store)

	target, err := s.Login(context.Background(), model.ChannelPassenger, "ann@x.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if target != model.TargetPassengerHome {
		t.Fatalf("target = %q", target)
	}
	sess, _ := store.Get(context.Background())
	if sess.Token != "t1" || sess.StaffToken != "" {
		t.Fatalf("token slots: %+v", sess)
	}
}

func TestLogin_UnknownRoleLeavesSessionEmpty(t *testing.T) {
	t.Parallel()
	api := &fakeAuth{res: model.AuthResult{Token: "t", RawRole: "bogus"}}
	store := session.NewMemory()
	s := NewLoginService(api, store)

	_, err := s.Login(context.Background(), model.ChannelPassenger, "a@x.com", "pw")
	if !errors.Is(err, errs.ErrUnknownRole) {
		t.Fatalf("want ErrUnknownRole, got %v", err)
	}
	if _, err := store.Get(context.Background()); !errors.Is(err, errs.ErrNoSession) {
		t.Fatalf("session must not persist on misroute, got %v", err)
	}
}

func TestLogin_BackendErrorPassesThrough(t *testing.T) {
	t.Parallel()
	api := &fakeAuth{err: errs.ErrAuthentication}
	s := NewLoginService(api, session.NewMemory())

	_, err := s.Login(context.Background(), model.ChannelFinance, "f@x.com", "pw")
	if !errors.Is(err, errs.ErrAuthentication) {
		t.Fatalf("want ErrAuthentication, got %v", err)
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	t.Parallel()
	api := &fakeAuth{res: model.AuthResult{Token: "t", RawRole: "admin"}}
	store := session.NewMemory()
	s := NewLoginService(api, store)

	if _, err := s.Login(context.Background(), model.ChannelStaff, "a@x.com", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := s.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := s.Current(context.Background()); !errors.Is(err, errs.ErrNoSession) {
		t.Fatalf("want ErrNoSession after logout, got %v", err)
	}
}
