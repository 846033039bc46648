/*
 * This file is part of privacy-logic.
 *
 * privacy-logic is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * privacy-logic is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with privacy-logic.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package engine

import (
	"github.com/deepmap/oapi-codegen/pkg/runtime"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/voice4victims/privacy-logic/api"
	"github.com/voice4victims/privacy-logic/pkg"
	"github.com/voice4victims/privacy-logic/storage/postgres"
)

// Configuration keys, shared with the command layer.
const (
	ConfInterface      = "interface"
	ConfPort           = "port"
	ConfDatabaseURL    = "databaseUrl"
	ConfMigrationsPath = "migrationsPath"
	ConfAuthEndpoint   = "authEndpoint"
	ConfNotifyEndpoint = "notifyEndpoint"
	ConfRateLimit      = "rateLimit"
)

// Engine bundles the privacy governance service with its root command and its
// HTTP routes so the command layer can host it.
type Engine struct {
	Name      string
	Cmd       *cobra.Command
	Configure func() error
	Start     func() error
	Shutdown  func() error
	Routes    func(router runtime.EchoRouter)
}

func NewPrivacyEngine() *Engine {
	pl := pkg.PrivacyLogicInstance()

	return &Engine{
		Name:      "PrivacyLogicInstance",
		Cmd:       cmd(),
		Configure: pl.Configure,
		Start: func() error {
			return start(pl)
		},
		Shutdown: pl.Shutdown,
		Routes: func(router runtime.EchoRouter) {
			api.RegisterHandlers(router, &api.Wrapper{Pl: pl, Auth: pl.Identity})
		},
	}
}

// start opens the document store, runs migrations and wires the service's
// collaborators from configuration.
func start(pl *pkg.PrivacyLogic) error {
	store, err := postgres.Open(viper.GetString(ConfDatabaseURL))
	if err != nil {
		return err
	}
	if path := viper.GetString(ConfMigrationsPath); path != "" {
		if err := store.Migrate(path); err != nil {
			return err
		}
	}

	pl.Store = store
	pl.Identity = pkg.NewBearerIdentityProvider(viper.GetString(ConfAuthEndpoint))
	pl.Notifier = pkg.NewWebhookNotificationSink(viper.GetString(ConfNotifyEndpoint))
	if limit := viper.GetInt(ConfRateLimit); limit > 0 {
		pl.Config.RateLimit = limit
	}

	if err := pl.Configure(); err != nil {
		return err
	}
	return pl.Start()
}

func cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "privacy-logic",
		Short: "Privacy and access governance for family medical records",
		Long: `privacy-logic decides who may see which medical records in a family
account, resolves per-child privacy settings, runs the consent and
deletion lifecycle and keeps the audit trail.`,
	}
}
