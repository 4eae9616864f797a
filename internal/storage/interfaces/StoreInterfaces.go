package interfaces

import "aurora/internal/models"

type CredentialStoreInterface interface {
	Init() error
	Load() (models.Users, error)
	Save(users models.Users) error
	Verify(username, password string) bool
	Get(username string) (*models.User, error)
	AddTrusted(name, username, password string) error
	RemoveTrusted(username string) (bool, error)
	ChangePassword(username, password string) error
	Trusted() ([]models.Contact, error)
	MaxTrusted() int
}

type AlertLogInterface interface {
	Init() error
	Append(alert *models.Alert) (int, error)
	Last() (*models.Alert, error)
	Recent(n int) ([]*models.Alert, error)
	LastId() int
}
