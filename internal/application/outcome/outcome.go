// Package outcome implementa el protocolo de estados de resultado que
// desacopla los casos de uso del transporte: las operaciones nunca devuelven
// errores de negocio al llamador, siempre escriben exactamente un estado en
// el presentador.
package outcome

// State estados finitos de resultado de una operación.
type State int

const (
	StateUnset State = iota
	StateOK
	StateValidationError
	StateUnauthenticated
	StateForbidden
	StateConflict
	StateNotFound
)

// String nombre legible del estado (para logs y tests).
func (s State) String() string {
	switch s {
	case StateOK:
		return "ok"
	case StateValidationError:
		return "validation_error"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateForbidden:
		return "forbidden"
	case StateConflict:
		return "conflict"
	case StateNotFound:
		return "not_found"
	}
	return "unset"
}

// Presenter sumidero de resultado de una operación. El contrato es escribir
// exactamente una vez por invocación: ni cero ni dos escrituras.
type Presenter[T any] interface {
	OK(value T)
	ValidationError(message string)
	Unauthenticated(message string)
	Forbidden(message string)
	Conflict(message string)
	NotFound(message string)
}

// Recorder implementación concreta de Presenter que retiene el último estado
// escrito y cuenta las escrituras, para que el transporte lo traduzca a un
// status wire y los tests detecten violaciones del contrato una-escritura.
type Recorder[T any] struct {
	state   State
	value   T
	message string
	writes  int
}

// NewRecorder construye un Recorder vacío (StateUnset).
func NewRecorder[T any]() *Recorder[T] {
	return &Recorder[T]{}
}

func (r *Recorder[T]) set(s State, msg string) {
	r.state = s
	r.message = msg
	r.writes++
}

// OK registra éxito con el payload de resultado.
func (r *Recorder[T]) OK(value T) {
	r.value = value
	r.set(StateOK, "")
}

// ValidationError registra una violación de regla de negocio o de valor.
func (r *Recorder[T]) ValidationError(message string) { r.set(StateValidationError, message) }

// Unauthenticated registra fallo de autenticación (mensaje constante, sin
// detalle de qué verificación falló).
func (r *Recorder[T]) Unauthenticated(message string) { r.set(StateUnauthenticated, message) }

// Forbidden registra fallo de autorización.
func (r *Recorder[T]) Forbidden(message string) { r.set(StateForbidden, message) }

// Conflict registra un conflicto de integridad o concurrencia.
func (r *Recorder[T]) Conflict(message string) { r.set(StateConflict, message) }

// NotFound registra entidad inexistente.
func (r *Recorder[T]) NotFound(message string) { r.set(StateNotFound, message) }

// State devuelve el estado registrado (StateUnset si nadie escribió).
func (r *Recorder[T]) State() State { return r.state }

// Value devuelve el payload de éxito (cero si el estado no es OK).
func (r *Recorder[T]) Value() T { return r.value }

// Message devuelve el mensaje humano de los estados de fallo.
func (r *Recorder[T]) Message() string { return r.message }

// Writes devuelve cuántas veces se escribió el resultado. Debe ser exactamente
// 1 tras cada invocación de una operación.
func (r *Recorder[T]) Writes() int { return r.writes }
