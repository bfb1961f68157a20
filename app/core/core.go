package core

import (
	"io"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/corpora-ai/corpora/app/core/srv"
	"github.com/corpora-ai/corpora/app/store/sqlstore"
	"github.com/corpora-ai/corpora/pkg/objectstorage"
	"github.com/corpora-ai/corpora/pkg/objectstorage/local"
	"github.com/corpora-ai/corpora/pkg/objectstorage/s3"
	"github.com/corpora-ai/corpora/pkg/utils"
)

type Core struct {
	cfg CoreConfig
	srv *srv.Srv

	stores      func() *sqlstore.Provider
	fileStorage objectstorage.FileStorage
	httpEngine  *gin.Engine

	metrics *Metrics
}

func newHttpEngine() *gin.Engine {
	e := gin.New()
	// deadlines and cancellation set on the request context must reach the
	// store and provider calls that receive the gin context as their
	// context.Context
	e.ContextWithFallback = true
	return e
}

func MustSetupCore(cfg CoreConfig) *Core {
	{
		var writer io.Writer = os.Stdout
		if cfg.Log.Path != "" {
			writer = &lumberjack.Logger{
				Filename:   cfg.Log.Path,
				MaxSize:    500, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			}
		}
		l := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level: cfg.Log.SlogLevel(),
		}))
		slog.SetDefault(l)
	}

	utils.SetupIDWorker(1)

	core := &Core{
		cfg:        cfg,
		metrics:    NewMetrics("corpora", "core"),
		httpEngine: newHttpEngine(),
	}

	setupSqlStore(core)
	setupObjectStorage(core)

	core.srv = srv.SetupSrvs(srv.ApplyAI(cfg.AI))

	return core
}

func setupSqlStore(core *Core) {
	core.stores = sqlstore.MustSetup(core.cfg.Postgres)
	if err := core.stores().Install(); err != nil {
		panic(err)
	}
	slog.Info("sql store ready")
}

func setupObjectStorage(core *Core) {
	switch core.cfg.ObjectStorage.Driver {
	case objectstorage.DRIVER_S3:
		s3cfg := core.cfg.ObjectStorage.S3
		if s3cfg == nil {
			panic("object_storage.s3 config is required for the s3 driver")
		}
		core.fileStorage = s3.NewS3Client(s3cfg.Endpoint, s3cfg.Region, s3cfg.Bucket,
			s3cfg.AccessKey, s3cfg.SecretKey, s3.WithPathStyle(s3cfg.UsePathStyle))
	default:
		root := core.cfg.ObjectStorage.LocalRoot
		if root == "" {
			root = "./data/blobs"
		}
		storage, err := local.New(root)
		if err != nil {
			panic(err)
		}
		core.fileStorage = storage
	}
}

func (s *Core) Cfg() CoreConfig {
	return s.cfg
}

func (s *Core) HttpEngine() *gin.Engine {
	return s.httpEngine
}

func (s *Core) Metrics() *Metrics {
	return s.metrics
}

func (s *Core) Store() *sqlstore.Provider {
	return s.stores()
}

func (s *Core) FileStorage() objectstorage.FileStorage {
	return s.fileStorage
}

func (s *Core) Srv() *srv.Srv {
	return s.srv
}

// ApplySrvs re-applies service options on a running core. Tests use it to
// swap the embedding driver for a stub.
func (s *Core) ApplySrvs(opts ...srv.ApplyFunc) {
	for _, opt := range opts {
		opt(s.srv)
	}
}
