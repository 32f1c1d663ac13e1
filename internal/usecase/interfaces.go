package usecase

import (
	"context"
	"io"

	"creacakes/internal/domain/entity"
)

// AuthClient abstracts the Firebase Auth operations the usecases need.
type AuthClient interface {
	CreateUser(ctx context.Context, email, password, displayName string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	SignInWithEmailPassword(ctx context.Context, email, password string) (string, error)
	UpdateUserPassword(ctx context.Context, uid, newPassword string) error
}

// FileUploader stores an uploaded file and returns its public URL.
type FileUploader interface {
	UploadFile(ctx context.Context, file io.Reader, contentType, folder, originalName string) (string, error)
}

// Mailer delivers one rendered outbox notification.
type Mailer interface {
	Send(ctx context.Context, notification *entity.Notification) error
}

// ThreadBroadcaster pushes a payload to every live subscriber of a quote
// thread. The seq is the message's position in the thread; subscribers use
// it to discard frames their backlog replay already covered. The websocket
// manager implements it.
type ThreadBroadcaster interface {
	SendToThread(quoteID string, seq int64, message []byte)
}
