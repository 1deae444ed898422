package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/benwarner/staffplan/internal/config"
	"github.com/benwarner/staffplan/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	OAuthCfg *config.OAuthClientConfig
	Database db.Database
	Logger   *zap.Logger
	Ctx      context.Context
}
