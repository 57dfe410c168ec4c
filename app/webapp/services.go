package webapp

import (
	"io/fs"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/webdemo/core/cache"
	"github.com/dmitrymomot/webdemo/core/i18n"
	"github.com/dmitrymomot/webdemo/core/services"
	"github.com/dmitrymomot/webdemo/core/session"
)

// DataService is created once per request.
type DataService struct {
	id       string
	settings DataSettings
	created  time.Time
}

// NewDataService creates a DataService for the given settings.
func NewDataService(s DataSettings) *DataService {
	return &DataService{id: uuid.NewString(), settings: s, created: time.Now()}
}

// ID identifies the instance, which makes its per-request lifetime visible.
func (s *DataService) ID() string { return s.id }

// Name returns the configured data source name.
func (s *DataService) Name() string { return s.settings.Name }

// FileProvider is the composite static asset provider.
type FileProvider struct{ fs.FS }

func registerServices(c *services.Collection, data DataSettings, tr *i18n.I18n, kv cache.Cache, sessions *session.Manager, files FileProvider) {
	services.AddInstance(c, data)
	services.AddInstance(c, tr)
	services.AddInstance(c, kv)
	services.AddInstance(c, sessions)
	services.AddInstance(c, files)
	services.AddScoped(c, func(r services.Resolver) (*DataService, error) {
		s, err := services.Resolve[DataSettings](r)
		if err != nil {
			return nil, err
		}
		return NewDataService(s), nil
	})
}
