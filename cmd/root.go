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

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mitchellh/go-homedir"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/voice4victims/privacy-logic/engine"
	"github.com/voice4victims/privacy-logic/pkg"
)

var e = engine.NewPrivacyEngine()
var rootCmd = e.Cmd

var cfgFile string

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the privacy governance api server",
		Run: func(cmd *cobra.Command, args []string) {
			server := echo.New()
			server.HideBanner = true
			server.Use(middleware.Logger())

			if err := e.Start(); err != nil {
				server.Logger.Fatal(err)
			}
			defer e.Shutdown()

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go pkg.PrivacyLogicInstance().RunSweeps(ctx)

			e.Routes(server)
			server.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

			addr := fmt.Sprintf("%s:%d", viper.GetString(engine.ConfInterface), viper.GetInt(engine.ConfPort))
			server.Logger.Fatal(server.Start(addr))
		},
	})

	rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.privacy-logic.yaml)")

	rootCmd.Flags().String(engine.ConfInterface, "localhost", "Server interface binding")
	rootCmd.Flags().StringP(engine.ConfPort, "p", "1324", "Server listen port")
	rootCmd.Flags().String(engine.ConfDatabaseURL, "postgres://localhost/privacy_logic?sslmode=disable", "PostgreSQL connection URL")
	rootCmd.Flags().String(engine.ConfMigrationsPath, "storage/postgres/migrations", "Directory holding the schema migrations")
	rootCmd.Flags().String(engine.ConfAuthEndpoint, "", "Identity introspection endpoint")
	rootCmd.Flags().String(engine.ConfNotifyEndpoint, "", "Consent propagation webhook, empty disables propagation")
	rootCmd.Flags().Int(engine.ConfRateLimit, 0, "Access checks allowed per account per minute, 0 keeps the default")

	viper.SetEnvPrefix("PRIVACY_LOGIC")
	for _, key := range []string{
		engine.ConfInterface, engine.ConfPort, engine.ConfDatabaseURL,
		engine.ConfMigrationsPath, engine.ConfAuthEndpoint,
		engine.ConfNotifyEndpoint, engine.ConfRateLimit,
	} {
		viper.BindPFlag(key, rootCmd.Flags().Lookup(key))
		viper.BindEnv(key)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".privacy-logic" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".privacy-logic")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
