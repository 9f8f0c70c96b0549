package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sabrinaansede/apphib/internal/client/api"
	"github.com/sabrinaansede/apphib/internal/client/app"
	"github.com/sabrinaansede/apphib/internal/client/navigation"
	"github.com/sabrinaansede/apphib/internal/client/session"
	"github.com/sabrinaansede/apphib/internal/client/storage"
	"github.com/sabrinaansede/apphib/internal/client/technique"
	"github.com/sabrinaansede/apphib/pkg/logger"
)

const (
	keyAPIURL   = "api_url"
	keyStateDir = "state_dir"
	keyVerbose  = "verbose"

	defaultAPIURL = "http://localhost:5000"
)

// cli is built once per process in PersistentPreRunE and shared by every
// command.
type cli struct {
	out io.Writer
	fs  afero.Fs
	v   *viper.Viper

	sessions  *session.Store
	auth      *app.Auth
	mapScreen *app.MapScreen
	myReviews *app.MyReviews
	catalog   *technique.Catalog
	favorites *technique.Favorites
	router    *navigation.Router

	// actions holds what the current command wants to run at each path.
	actions map[string]navigation.View
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out, fs: afero.NewOsFs(), v: viper.New(), actions: make(map[string]navigation.View)}
	var cfgFile string

	root := &cobra.Command{
		Use:           "lugares",
		Short:         "Lugares Seguros: mapa comunitario de lugares amigables sensorialmente",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cfgFile)
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "archivo de configuración (yaml, json o toml)")
	root.PersistentFlags().String("api-url", defaultAPIURL, "URL base de la API")
	root.PersistentFlags().String("state-dir", "", "directorio donde se guarda la sesión")
	root.PersistentFlags().Bool("verbose", false, "muestra logs de diagnóstico")
	_ = c.v.BindPFlag(keyAPIURL, root.PersistentFlags().Lookup("api-url"))
	_ = c.v.BindPFlag(keyStateDir, root.PersistentFlags().Lookup("state-dir"))
	_ = c.v.BindPFlag(keyVerbose, root.PersistentFlags().Lookup("verbose"))

	root.AddCommand(
		c.registerCmd(),
		c.loginCmd(),
		c.logoutCmd(),
		c.mapCmd(),
		c.addPlaceCmd(),
		c.voteCmd(),
		c.reviewCmd(),
		c.myReviewsCmd(),
		c.contactCmd(),
		c.techniquesCmd(),
	)
	return root
}

func (c *cli) setup(cfgFile string) error {
	c.v.SetEnvPrefix("LUGARES")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if cfgFile != "" {
		c.v.SetConfigFile(cfgFile)
		if err := c.v.ReadInConfig(); err != nil {
			return fmt.Errorf("no se pudo leer la configuración: %w", err)
		}
	}

	if c.v.GetBool(keyVerbose) {
		if _, err := logger.Init("debug", true); err != nil {
			return err
		}
	}

	stateDir := c.v.GetString(keyStateDir)
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("no se pudo resolver el directorio de estado: %w", err)
		}
		stateDir = filepath.Join(home, ".lugares")
	}

	local := storage.NewLocal(c.fs, stateDir)
	c.sessions = session.NewStore(local)
	c.sessions.Init()
	c.sessions.Subscribe(func(sess session.Session, ok bool) {
		if ok {
			logger.Debug("sesión iniciada: %s", sess.User.Email)
			return
		}
		logger.Debug("sesión cerrada")
	})

	client := api.New(c.v.GetString(keyAPIURL), api.WithToken(func() string {
		sess, _ := c.sessions.Current()
		return sess.Token
	}))

	c.auth = app.NewAuth(client, c.sessions)
	c.mapScreen = app.NewMapScreen(client, c.sessions)
	c.myReviews = app.NewMyReviews(client, c.sessions)
	c.catalog = technique.NewCatalog()
	c.favorites = technique.LoadFavorites(local)

	c.router = navigation.NewRouter(c.sessions)
	c.router.Handle(navigation.PathHome, navigation.Public, c.view(navigation.PathHome))
	c.router.Handle(navigation.PathMap, navigation.Public, c.view(navigation.PathMap))
	c.router.Handle(navigation.PathContact, navigation.Protected, c.view(navigation.PathContact))
	c.router.Handle(navigation.PathMyReviews, navigation.Protected, c.view(navigation.PathMyReviews))
	c.router.Handle(navigation.PathLogin, navigation.Public, c.view(navigation.PathLogin))
	c.router.Handle(navigation.PathRegister, navigation.Public, c.view(navigation.PathRegister))
	return nil
}

func (c *cli) view(path string) navigation.View {
	return func(ctx context.Context) error {
		if action, ok := c.actions[path]; ok {
			return action(ctx)
		}
		if path == navigation.PathLogin {
			fmt.Fprintln(c.out, "Iniciá sesión con: lugares login --email <email> --password <contraseña>")
		}
		return nil
	}
}

// open runs action at path through the router.
func (c *cli) open(ctx context.Context, path string, action navigation.View) error {
	c.actions[path] = action
	out, err := c.router.Navigate(ctx, path)
	if err != nil {
		return err
	}
	if out.Redirected() {
		fmt.Fprintf(c.out, "%s requiere una sesión iniciada.\n", out.From)
	}
	return nil
}

// userError keeps the message users should see and drops internal detail.
func userError(err error) error {
	if err == nil {
		return nil
	}
	return errors.New(app.Message(err))
}
