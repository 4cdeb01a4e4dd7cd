package mailer

import "errors"

var (
	// ErrDisabled возвращается, когда отправка почты выключена в конфигурации
	ErrDisabled = errors.New("mailer: disabled")

	// ErrBuildMessage возвращается при ошибке сборки письма или календарного события
	ErrBuildMessage = errors.New("mailer: failed to build message")

	// ErrSendFailed возвращается, когда письмо не удалось доставить ни одному получателю
	ErrSendFailed = errors.New("mailer: failed to send message")
)
