package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_login_attempts_total",
		Help: "Intentos de login por resultado.",
	}, []string{"result"})

	tokenRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_token_rejections_total",
		Help: "Tokens rechazados por el resolvedor de sesión, por motivo.",
	}, []string{"reason"})

	tokensIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_tokens_issued_total",
		Help: "Tokens emitidos por origen (login o refresh).",
	}, []string{"source"})
)

// Motivos de rechazo. Solo se usan en logs y métricas; hacia afuera todos son ErrUnauthenticated.
const (
	reasonMissing          = "missing"
	reasonMalformed        = "malformed"
	reasonExpired          = "expired"
	reasonNoSubject        = "no_subject"
	reasonUnknownPrincipal = "unknown_principal"
)
