package services

import (
	"aurora/internal/models"
	"aurora/internal/storage/interfaces"
	"aurora/internal/structures"
	"fmt"
	"github.com/gookit/validate"
	"strings"
)

type RegistrationInput struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ContactServiceInterface interface {
	Add(in *RegistrationInput) error
	Remove(username string) (bool, error)
	List() ([]models.Contact, error)
	Names() ([]string, error)
	ChangePassword(username, password string) error
	Limit() int
}

type ContactService struct {
	store             interfaces.CredentialStoreInterface
	minPasswordLength int
}

func NewContactService(conf *structures.Config, store interfaces.CredentialStoreInterface) ContactServiceInterface {
	return &ContactService{store: store, minPasswordLength: conf.Auth.MinPasswordLength}
}

// bcrypt rejects anything past 72 bytes; maxLen counts runes.
const maxPasswordBytes = 72

func (cs *ContactService) passwordRule() string {
	return fmt.Sprintf("required|minLen:%d|maxLen:%d", cs.minPasswordLength, maxPasswordBytes)
}

func checkPasswordBytes(password string) error {
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password exceeds %d bytes", models.ErrInvalidInput, maxPasswordBytes)
	}
	return nil
}

func invalid(v *validate.Validation) error {
	return fmt.Errorf("%w: %s", models.ErrInvalidInput, v.Errors.One())
}

func (cs *ContactService) Add(in *RegistrationInput) error {
	if in == nil {
		return fmt.Errorf("%w: empty registration", models.ErrInvalidInput)
	}
	name := strings.TrimSpace(in.Name)
	username := models.NormalizeUsername(in.Username)

	v := validate.Map(map[string]any{
		"name":     name,
		"username": username,
		"password": in.Password,
	})
	v.StringRule("name", "required|maxLen:100")
	v.StringRule("username", "required|maxLen:64|regex:^[a-z0-9._-]+$")
	v.StringRule("password", cs.passwordRule())
	if !v.Validate() {
		return invalid(v)
	}
	if err := checkPasswordBytes(in.Password); err != nil {
		return err
	}
	return cs.store.AddTrusted(name, username, in.Password)
}

func (cs *ContactService) Remove(username string) (bool, error) {
	return cs.store.RemoveTrusted(username)
}

func (cs *ContactService) List() ([]models.Contact, error) {
	return cs.store.Trusted()
}

func (cs *ContactService) Names() ([]string, error) {
	contacts, err := cs.store.Trusted()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(contacts))
	for _, c := range contacts {
		names = append(names, c.Name)
	}
	return names, nil
}

func (cs *ContactService) ChangePassword(username, password string) error {
	v := validate.Map(map[string]any{"password": password})
	v.StringRule("password", cs.passwordRule())
	if !v.Validate() {
		return invalid(v)
	}
	if err := checkPasswordBytes(password); err != nil {
		return err
	}
	return cs.store.ChangePassword(username, password)
}

func (cs *ContactService) Limit() int {
	return cs.store.MaxTrusted()
}
