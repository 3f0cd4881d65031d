package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"resume-analyzer/internal/config"
	"resume-analyzer/internal/database"
	"resume-analyzer/internal/database/migration"
	dbpostgres "resume-analyzer/internal/database/postgres"
	"resume-analyzer/internal/domain/analysis"
	"resume-analyzer/internal/domain/feature"
	"resume-analyzer/internal/domain/scoring"
	"resume-analyzer/internal/domain/skill"
	"resume-analyzer/internal/infrastructure/archive"
	"resume-analyzer/internal/infrastructure/cache"
	"resume-analyzer/internal/infrastructure/pdftext"
	"resume-analyzer/internal/pkg/jwt"
	"resume-analyzer/internal/repository"
	"resume-analyzer/internal/usecase"
	"resume-analyzer/internal/ws"
)

const TokenIssuer = "resume-analyzer"

// Core is the analysis pipeline without any outer dependency: text
// extraction, the feature extractor and a trained scorer.
type Core struct {
	Extractor *feature.Extractor
	Scorer    *scoring.Scorer
	Analyzer  *usecase.Analyzer
}

// NewCore builds the pipeline and trains the scorer on the built-in samples.
func NewCore(ctx context.Context, cfg config.ModelConfig, logger *log.Logger) (*Core, error) {
	ext := feature.NewExtractor(skill.Default())

	opts := scoring.DefaultOptions()
	opts.Trees = cfg.Trees
	opts.Seed = cfg.Seed
	opts.Workers = cfg.Workers
	sc := scoring.NewScorer(ext, opts, logger)
	if err := sc.Train(ctx, scoring.DefaultSamples()); err != nil {
		return nil, fmt.Errorf("train scorer: %w", err)
	}

	return &Core{
		Extractor: ext,
		Scorer:    sc,
		Analyzer:  usecase.NewAnalyzer(pdftext.NewExtractor(logger), ext, sc, logger),
	}, nil
}

type Container struct {
	Config config.Config
	Logger *log.Logger
	*Core

	DB      database.DB
	Cache   *cache.Redis
	Archive *archive.S3
	Hub     *ws.Hub
	JWT     jwt.Service
	Resume  *usecase.Resume
}

// NewContainer wires every component. Persistence, caching and archiving are
// optional: each is skipped when its config section is empty.
func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	core, err := NewCore(ctx, cfg.Model, logger)
	if err != nil {
		return nil, err
	}
	c := &Container{Config: cfg, Logger: logger, Core: core}

	var repo analysis.Repository
	if cfg.Database.Enabled() {
		db, err := ConnectDatabase(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		c.DB = db
		repo = repository.NewPostgresAnalysisRepository(db)
	} else {
		logger.Printf("[Database] DB_HOST not set, analysis history disabled")
	}

	c.Cache = cache.NewRedis(cfg.Redis, logger)

	var archiver usecase.Archiver
	if cfg.Archive.Enabled() {
		s3, err := archive.NewS3(ctx, cfg.Archive, logger)
		if err != nil {
			_ = c.Close()
			return nil, err
		}
		c.Archive = s3
		archiver = s3
	}

	if cfg.Auth.AdminJWTSecret != "" {
		c.JWT = jwt.NewHMACService(cfg.Auth.AdminJWTSecret, cfg.Auth.TokenTTL, TokenIssuer)
	}

	c.Hub = ws.NewHub(logger)
	c.Resume = usecase.NewResumeUsecase(core.Analyzer, repo, c.Cache, archiver, ws.NewNotifier(c.Hub), usecase.ResumeOptions{
		UploadDir:         cfg.Upload.Dir,
		MaxBytes:          cfg.Upload.MaxBytes,
		CacheTTL:          cfg.Redis.TTL,
		SchemaFingerprint: core.Extractor.Schema().Fingerprint(),
	}, logger)

	return c, nil
}

// ConnectDatabase opens the pool and applies pending migrations.
func ConnectDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *log.Logger) (database.DB, error) {
	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connCtx, cfg)
	if err != nil {
		return nil, err
	}

	migCtx, migCancel := context.WithTimeout(ctx, 2*time.Minute)
	defer migCancel()
	r := migration.Runner{Dir: cfg.MigrationsDir, Logger: logger}
	if _, err := r.Run(migCtx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var firstErr error
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
