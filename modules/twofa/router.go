package twofa

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures which services to mount in the two-factor module.
type RouterOptions struct {
	TwoFactor Mountable
}

// Router creates the module router.
//
// Example:
//
//	svc, err := twofa.NewService(cfg, core, resolver)
//	if err != nil {
//		return err
//	}
//
//	r := chi.NewRouter()
//	r.Mount("/2fa", twofa.Router(twofa.RouterOptions{TwoFactor: svc}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	if opts.TwoFactor != nil {
		r.Mount("/", opts.TwoFactor.Handle())
	}

	return r
}
