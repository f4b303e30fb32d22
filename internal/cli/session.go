package cli

import (
	"slices"

	"mailchips/internal/config"
	"mailchips/internal/emails"
	"mailchips/internal/form"
	"mailchips/internal/model"

	"go.uber.org/zap"
)

// session wires one store (and, when configured, its host form array) to a
// controller.
type session struct {
	store *emails.Store
	ctl   *emails.Controller
	form  *form.Array
	rec   *emails.Recorder
}

func newSession(cfg *config.Config, log *zap.Logger, seed []string) *session {
	all := append(slices.Clone(cfg.InitialAddresses), seed...)

	opts := cfg.StoreOptions()
	opts.Logger = log
	var arr *form.Array
	if cfg.BindForm {
		arr = form.FromEmails(all, form.Required, form.Email)
		opts.External = arr
	}

	s := emails.New(opts)
	rec := &emails.Recorder{}
	s.OnEvent(rec.Listen)

	list := make([]model.Address, 0, len(all))
	for _, e := range all {
		list = append(list, model.Address{Email: e})
	}
	s.Initialize(list)

	return &session{store: s, ctl: emails.NewController(s), form: arr, rec: rec}
}

func (s *session) Close() { s.store.Close() }

type eventOut struct {
	Event string `json:"event"`
	Email string `json:"email"`
}

type listOut struct {
	Entries []model.Address `json:"entries"`
	Valid   []string        `json:"valid"`
	Invalid []string        `json:"invalid"`
	Bound   bool            `json:"bound"`
}

func (s *session) list() listOut {
	out := listOut{Entries: s.store.Entries(), Valid: []string{}, Invalid: []string{}, Bound: s.store.Bound()}
	for _, a := range out.Entries {
		if a.Invalid {
			out.Invalid = append(out.Invalid, a.Email)
		} else {
			out.Valid = append(out.Valid, a.Email)
		}
	}
	return out
}

func (s *session) events() []eventOut {
	out := make([]eventOut, 0, len(s.rec.Events))
	for _, ev := range s.rec.Events {
		out = append(out, eventOut{Event: ev.Kind.String(), Email: ev.Email})
	}
	return out
}
