package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/hrms-lite-api/internal/domain"
)

var jsonNull = []byte("null")

// requestBody - JSON-объект запроса, разбираемый по полям.
// Ошибка типа в одном поле записывается в errs и не мешает разбору остальных.
type requestBody struct {
	fields map[string]json.RawMessage
	errs   domain.FieldErrors
}

// readBody читает тело запроса как один JSON-объект. Пустое тело равносильно
// пустому объекту; невалидный JSON, не-объект и данные после объекта дают
// ошибку валидации под non_field_errors.
func readBody(r *http.Request) (*requestBody, error) {
	body := &requestBody{fields: map[string]json.RawMessage{}, errs: domain.FieldErrors{}}

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&body.fields); err != nil {
		if errors.Is(err, io.EOF) {
			return body, nil
		}
		return nil, malformedBody()
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformedBody()
	}
	if body.fields == nil {
		body.fields = map[string]json.RawMessage{}
	}
	return body, nil
}

func malformedBody() error {
	return domain.NewValidationError(domain.NonFieldErrors, domain.MsgMalformedJSON)
}

// raw возвращает значение поля; отсутствующее поле и null равнозначны
func (b *requestBody) raw(name string) (json.RawMessage, bool) {
	value, ok := b.fields[name]
	if !ok || bytes.Equal(bytes.TrimSpace(value), jsonNull) {
		return nil, false
	}
	return value, true
}

// String разбирает строковое поле
func (b *requestBody) String(name string) *string {
	value, ok := b.raw(name)
	if !ok {
		return nil
	}
	var s string
	if err := json.Unmarshal(value, &s); err != nil {
		b.errs.Add(name, domain.MsgNotAString)
		return nil
	}
	return &s
}

// PrimaryKey разбирает ссылку на запись: число или строка с числом.
// Диапазон и целочисленность проверяет слой валидации.
func (b *requestBody) PrimaryKey(name string) *json.Number {
	value, ok := b.raw(name)
	if !ok {
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(value, &n); err != nil {
		b.errs.Add(name, domain.MsgEmployeeRefInvalid)
		return nil
	}
	return &n
}

// Errors возвращает накопленные ошибки типов полей
func (b *requestBody) Errors() domain.FieldErrors {
	return b.errs
}
