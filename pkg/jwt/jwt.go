package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Errores del códec. Los llamadores deben poder distinguir expirado de
// inválido: un token expirado pero bien firmado puede ameritar otra UX que
// un token basura, aunque ambos terminen en 401 en el gateway.
var (
	ErrTokenExpired = errors.New("jwt: token expirado")
	ErrTokenInvalid = errors.New("jwt: token inválido")
)

// Claims requeridos por defecto para considerar un token bien formado.
var DefaultRequiredClaims = []string{"sub", "exp", "role", "sid"}

// Codec firma y verifica conjuntos de claims compactos (HS256) con expiración
// y claims requeridos. No guarda estado por petición; es seguro para uso
// concurrente.
type Codec struct {
	secret         []byte
	issuer         string
	defaultExpires time.Duration
	required       []string
	now            func() time.Time
}

// Option ajusta la construcción del códec.
type Option func(*Codec)

// WithRequiredClaims reemplaza el conjunto de claims requeridos en Decode.
func WithRequiredClaims(names ...string) Option {
	return func(c *Codec) { c.required = names }
}

// WithClock inyecta la fuente de tiempo (para tests).
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec construye el códec. El secreto es configuración de proceso, no se
// negocia por petición.
func NewCodec(secret, issuer string, defaultExpires time.Duration, opts ...Option) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	if defaultExpires <= 0 {
		return nil, fmt.Errorf("jwt: expiración por defecto debe ser positiva")
	}
	c := &Codec{
		secret:         []byte(secret),
		issuer:         issuer,
		defaultExpires: defaultExpires,
		required:       DefaultRequiredClaims,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue firma los claims del llamador agregando "exp" absoluto (now +
// expiresIn, o la expiración por defecto si expiresIn <= 0) e "iss" si está
// configurado.
func (c *Codec) Issue(claims map[string]any, expiresIn time.Duration) (string, error) {
	if expiresIn <= 0 {
		expiresIn = c.defaultExpires
	}
	payload := jwtlib.MapClaims{}
	for k, v := range claims {
		payload[k] = v
	}
	payload["exp"] = c.now().Add(expiresIn).Unix()
	if c.issuer != "" {
		payload["iss"] = c.issuer
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, payload)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: firmar token: %w", err)
	}
	return signed, nil
}

// Decode verifica firma y estructura, exige los claims requeridos y — con
// verifyExpiry — rechaza tokens vencidos. Devuelve ErrTokenExpired solo
// cuando la firma es válida y la expiración pasó; cualquier otro fallo es
// ErrTokenInvalid.
func (c *Codec) Decode(tokenString string, verifyExpiry bool) (map[string]any, error) {
	claims := jwtlib.MapClaims{}
	parserOpts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(c.now),
	}
	if !verifyExpiry {
		parserOpts = append(parserOpts, jwtlib.WithoutClaimsValidation())
	}
	_, err := jwtlib.ParseWithClaims(tokenString, claims, func(t *jwtlib.Token) (any, error) {
		return c.secret, nil
	}, parserOpts...)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	for _, name := range c.required {
		if _, ok := claims[name]; !ok {
			return nil, fmt.Errorf("%w: falta claim requerido %q", ErrTokenInvalid, name)
		}
	}
	return claims, nil
}

// AuthorizedClaims contenido decodificado y verificado de un token. Nunca se
// confía en aislamiento: siempre se cruza contra la sesión viva y el usuario
// vivo antes de tratarlo como identidad autenticada.
type AuthorizedClaims struct {
	Subject   string
	Role      string
	SessionID string
	ExpiresAt time.Time
}

// DecodeAuthorized decodifica y proyecta los claims a la forma tipada que
// consume el gateway. Falla con ErrTokenInvalid si sub/role/sid no son
// strings no vacíos.
func (c *Codec) DecodeAuthorized(tokenString string, verifyExpiry bool) (*AuthorizedClaims, error) {
	claims, err := c.Decode(tokenString, verifyExpiry)
	if err != nil {
		return nil, err
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	sid, _ := claims["sid"].(string)
	if sub == "" || role == "" || sid == "" {
		return nil, fmt.Errorf("%w: claims sub/role/sid vacíos o con tipo incorrecto", ErrTokenInvalid)
	}
	exp, _ := claims["exp"].(float64)
	return &AuthorizedClaims{
		Subject:   sub,
		Role:      role,
		SessionID: sid,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}
