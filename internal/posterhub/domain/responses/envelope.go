// Package responses определяет единый конверт ответа оркестрирующего слоя.
package responses

// Kind - машиночитаемый вид исхода операции. Вид не сериализуется в ответ:
// на проводе остается форма {data, message}, а транспортный слой
// отображает вид в статус протокола.
type Kind int

// Виды исходов.
const (
	KindOK Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindInternal
)

// Envelope - единый конверт успеха/неуспеха. Ключ data присутствует всегда:
// null вместе с описательным сообщением означает обработанный неуспех,
// не-null (включая пустую коллекцию) - успех. Not-found не является ошибкой.
type Envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
	Kind    Kind   `json:"-"`
}

// OK создает конверт успешного исхода с данными.
func OK[T any](data T, message string) Envelope[T] {
	return Envelope[T]{Data: data, Message: message, Kind: KindOK}
}

// Fail создает конверт обработанного неуспеха без данных.
func Fail[T any](kind Kind, message string) Envelope[T] {
	return Envelope[T]{Message: message, Kind: kind}
}

// Success сообщает, завершилась ли операция успешно.
func (e Envelope[T]) Success() bool {
	return e.Kind == KindOK
}
