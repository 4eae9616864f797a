package storage

import (
	"aurora/internal/models"
	"aurora/internal/providers"
	"aurora/internal/storage/interfaces"
	"aurora/internal/structures"
	"errors"
	"fmt"
	json "github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
	"time"
)

const usersStore = "users"

// CredentialStore is the users.json file. Every read-modify-write runs under
// mu, so concurrent registrations and removals are linearizable.
type CredentialStore struct {
	mu         sync.Mutex
	path       string
	auth       structures.AuthConfig
	maxTrusted int
	quarantine *Quarantine
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface

	// compared against when the user is missing so Verify costs the same
	dummyOnce sync.Once
	dummyHash []byte
}

func NewCredentialStore(conf *structures.Config, quarantine *Quarantine, logger providers.Logger, metrics providers.MetricsProviderInterface) interfaces.CredentialStoreInterface {
	return &CredentialStore{
		path:       filepath.Join(conf.Storage.DataDir, conf.Storage.UsersFile),
		auth:       conf.Auth,
		maxTrusted: conf.Contacts.MaxTrusted,
		quarantine: quarantine,
		logger:     logger,
		metrics:    metrics,
	}
}

func (cs *CredentialStore) hash(password string) (string, error) {
	cost := cs.auth.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password longer than 72 bytes", models.ErrInvalidInput)
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (cs *CredentialStore) defaultAdmin() (*models.User, error) {
	hash, err := cs.hash(cs.auth.DefaultAdminPassword)
	if err != nil {
		return nil, err
	}
	name := cs.auth.DefaultAdminName
	if name == "" {
		name = "Admin"
	}
	return &models.User{PasswordHash: hash, Role: models.RoleAdmin, Name: name}, nil
}

// Init creates the data directory and bootstraps the file.
func (cs *CredentialStore) Init() error {
	if err := os.MkdirAll(filepath.Dir(cs.path), 0755); err != nil {
		return err
	}
	_, err := cs.Load()
	return err
}

func (cs *CredentialStore) MaxTrusted() int {
	return cs.maxTrusted
}

// Load returns the user mapping. A missing, empty or unparsable file is
// replaced by a store holding only the default admin; I/O errors other than
// "not exist" are returned.
func (cs *CredentialStore) Load() (models.Users, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.loadLocked()
}

func (cs *CredentialStore) loadLocked() (models.Users, error) {
	data, err := os.ReadFile(cs.path)
	if err != nil {
		if os.IsNotExist(err) {
			cs.logger.Infof(providers.TypeApp, "Users file %s not found, creating default admin", cs.path)
			return cs.resetLocked()
		}
		return nil, fmt.Errorf("read users file: %w", err)
	}

	if isBlank(data) {
		cs.recovered("empty file")
		return cs.resetLocked()
	}

	var raw models.Users
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		if err == nil {
			err = errors.New("null mapping")
		}
		cs.recovered(err.Error())
		if _, qErr := cs.quarantine.Preserve(filepath.Base(cs.path), data); qErr != nil {
			cs.logger.Errorf(providers.TypeApp, "Unable to quarantine users file: %s", qErr)
		}
		return cs.resetLocked()
	}

	users := make(models.Users, len(raw))
	for username, info := range raw {
		if info == nil {
			continue
		}
		users[models.NormalizeUsername(username)] = info
	}

	dirty := false
	if dropped := cs.normalizeRoles(users); len(dropped) > 0 {
		cs.logger.Warnf(providers.TypeApp, "%s: users file %s, dropped %v", models.ErrStoreCorrupt, cs.path, dropped)
		cs.metrics.IncStoreRecoveries(usersStore)
		if _, qErr := cs.quarantine.Preserve(filepath.Base(cs.path), data); qErr != nil {
			cs.logger.Errorf(providers.TypeApp, "Unable to quarantine users file: %s", qErr)
		}
		dirty = true
	}

	if !users.HasRole(models.RoleAdmin) {
		cs.logger.Warnf(providers.TypeApp, "Users file has no admin, restoring %q", cs.auth.DefaultAdminUser)
		admin, err := cs.defaultAdmin()
		if err != nil {
			return nil, err
		}
		users[models.NormalizeUsername(cs.auth.DefaultAdminUser)] = admin
		dirty = true
	}
	if dirty {
		if err := cs.saveLocked(users); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// normalizeRoles removes records with an unknown role and every admin but
// one: the configured admin when it holds the role, else the smallest
// username. It returns the removed usernames, sorted.
func (cs *CredentialStore) normalizeRoles(users models.Users) []string {
	var dropped, admins []string
	for username, info := range users {
		switch info.Role {
		case models.RoleAdmin:
			admins = append(admins, username)
		case models.RoleTrusted:
		default:
			dropped = append(dropped, username)
		}
	}
	if len(admins) > 1 {
		sort.Strings(admins)
		keep := admins[0]
		if def := models.NormalizeUsername(cs.auth.DefaultAdminUser); slices.Contains(admins, def) {
			keep = def
		}
		for _, username := range admins {
			if username != keep {
				dropped = append(dropped, username)
			}
		}
	}
	for _, username := range dropped {
		delete(users, username)
	}
	sort.Strings(dropped)
	return dropped
}

func (cs *CredentialStore) recovered(reason string) {
	cs.logger.Warnf(providers.TypeApp, "%s: users file %s (%s), resetting to default admin", models.ErrStoreCorrupt, cs.path, reason)
	cs.metrics.IncStoreRecoveries(usersStore)
}

func (cs *CredentialStore) resetLocked() (models.Users, error) {
	admin, err := cs.defaultAdmin()
	if err != nil {
		return nil, err
	}
	users := models.Users{models.NormalizeUsername(cs.auth.DefaultAdminUser): admin}
	if err := cs.saveLocked(users); err != nil {
		return nil, err
	}
	return users, nil
}

func (cs *CredentialStore) Save(users models.Users) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.saveLocked(users)
}

func (cs *CredentialStore) saveLocked(users models.Users) error {
	start := time.Now()
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}
	if err := writeFileAtomic(cs.path, data, 0600); err != nil {
		return fmt.Errorf("write users file: %w", err)
	}
	cs.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

// Verify never fails loudly: unknown users, empty or malformed hashes and
// unreadable stores all yield false.
func (cs *CredentialStore) Verify(username, password string) bool {
	user, err := cs.Get(username)
	if err != nil || user == nil || user.PasswordHash == "" {
		cs.compareDummy(password)
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

func (cs *CredentialStore) compareDummy(password string) {
	cs.dummyOnce.Do(func() {
		if hash, err := cs.hash("aurora-absent-user"); err == nil {
			cs.dummyHash = []byte(hash)
		}
	})
	if cs.dummyHash != nil {
		_ = bcrypt.CompareHashAndPassword(cs.dummyHash, []byte(password))
	}
}

// Get returns a copy of the user record, or nil when absent.
func (cs *CredentialStore) Get(username string) (*models.User, error) {
	users, err := cs.Load()
	if err != nil {
		return nil, err
	}
	info, ok := users[models.NormalizeUsername(username)]
	if !ok {
		return nil, nil
	}
	u := *info
	return &u, nil
}

func (cs *CredentialStore) AddTrusted(name, username, password string) error {
	username = models.NormalizeUsername(username)

	cs.mu.Lock()
	defer cs.mu.Unlock()

	users, err := cs.loadLocked()
	if err != nil {
		return err
	}
	if _, exists := users[username]; exists {
		return fmt.Errorf("%w: %s", models.ErrDuplicateUser, username)
	}
	if users.CountRole(models.RoleTrusted) >= cs.maxTrusted {
		return fmt.Errorf("%w: max %d", models.ErrLimitExceeded, cs.maxTrusted)
	}

	hash, err := cs.hash(password)
	if err != nil {
		return err
	}
	users[username] = &models.User{PasswordHash: hash, Role: models.RoleTrusted, Name: name}
	if err := cs.saveLocked(users); err != nil {
		return err
	}
	cs.logger.Infof(providers.TypeApp, "Trusted contact %s added", username)
	return nil
}

// RemoveTrusted reports whether a record was deleted. Absent or non-trusted
// usernames leave the file untouched.
func (cs *CredentialStore) RemoveTrusted(username string) (bool, error) {
	username = models.NormalizeUsername(username)

	cs.mu.Lock()
	defer cs.mu.Unlock()

	users, err := cs.loadLocked()
	if err != nil {
		return false, err
	}
	info, ok := users[username]
	if !ok || info.Role != models.RoleTrusted {
		return false, nil
	}
	delete(users, username)
	if err := cs.saveLocked(users); err != nil {
		return false, err
	}
	cs.logger.Infof(providers.TypeApp, "Trusted contact %s removed", username)
	return true, nil
}

func (cs *CredentialStore) ChangePassword(username, password string) error {
	username = models.NormalizeUsername(username)

	cs.mu.Lock()
	defer cs.mu.Unlock()

	users, err := cs.loadLocked()
	if err != nil {
		return err
	}
	info, ok := users[username]
	if !ok {
		return fmt.Errorf("%w: unknown user %s", models.ErrInvalidInput, username)
	}
	hash, err := cs.hash(password)
	if err != nil {
		return err
	}
	info.PasswordHash = hash
	if err := cs.saveLocked(users); err != nil {
		return err
	}
	cs.logger.Infof(providers.TypeApp, "Password changed for %s", username)
	return nil
}

func (cs *CredentialStore) Trusted() ([]models.Contact, error) {
	users, err := cs.Load()
	if err != nil {
		return nil, err
	}
	return users.Trusted(), nil
}
