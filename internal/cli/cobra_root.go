package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uadmin/internal/config"
	"uadmin/internal/gateway"
	"uadmin/internal/logging"

	"github.com/spf13/cobra"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	gateway gateway.Gateway
	config  *config.Config
	in      io.Reader
	out     io.Writer
}

// RootOption customises a RootCommand
type RootOption func(*RootCommand)

// WithGateway uses gw instead of an HTTP gateway built from the configuration
func WithGateway(gw gateway.Gateway) RootOption {
	return func(r *RootCommand) {
		r.gateway = gw
	}
}

// WithIO redirects prompts and output
func WithIO(in io.Reader, out io.Writer) RootOption {
	return func(r *RootCommand) {
		r.in = in
		r.out = out
	}
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config, opts ...RootOption) *RootCommand {
	root := &RootCommand{
		config: cfg,
		in:     os.Stdin,
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(root)
	}

	root.cmd = &cobra.Command{
		Use:   "uadmin",
		Short: "Administer users and their tasks",
		Long: `uadmin manages the users of a remote API and the tasks each user owns.

Run without a command to open the interactive table: a paginated list of
users with their tasks, a status filter and dialogs to add, edit, view and
delete users.

EXAMPLES:
  uadmin                                          # Open the interactive table
  uadmin list --filter Pendiente --page-size 5    # Print one page of users
  uadmin view 7                                   # Show one user and its tasks
  uadmin add --name Ana --email ana@example.com --password Secreto12 \
      --task "Informe|Mensual|En Progreso"        # Create a user with a task
  uadmin edit 7 --name "Ana María" --status 12=Completada
  uadmin delete 7                                 # Delete after confirmation
  uadmin task update 12 --status Completada       # Update a single task
  uadmin serve                                    # Run the development API

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  The config file is TOML, read from $UADMIN_CONFIG or ~/.uadmin/config.toml.

  Environment:
    UADMIN_BASE_URL                        API root (default: http://localhost:3000)
    UADMIN_GATEWAY_TIMEOUT                 HTTP timeout (default: 10s)
    UADMIN_PAGE_SIZE                       Initial page size: 3, 5 or 10 (default: 3)
    UADMIN_FILTER                          Initial status filter (default: Todos)
    UADMIN_NOTIFY_DURATION                 Notification lifetime (default: 3s)
    UADMIN_SERVER_ADDR                     Development server address (default: localhost:3000)
    UADMIN_DB_DIR / UADMIN_DB_FILENAME     Development server database
    UADMIN_APP_TIMEOUT                     Per-command timeout (default: 60s)
    UADMIN_APP_VERBOSE                     Enable verbose output
    UADMIN_LOG_FILE                        Log file of the interactive table
    UADMIN_DEBUG                           Enable debug logging`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Apply configuration overrides from flags before any command runs
			return root.getConfigFromFlags()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return NewInteractiveCommand(root.app()).Execute(ctx, args)
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// Command exposes the cobra command, mainly for tests
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Gateway configuration
	flags.String("base-url", "", "API root URL (overrides UADMIN_BASE_URL)")
	flags.Duration("gateway-timeout", 0, "HTTP timeout (overrides UADMIN_GATEWAY_TIMEOUT)")

	// Table configuration
	flags.Int("page-size", 0, "Page size: 3, 5 or 10 (overrides UADMIN_PAGE_SIZE)")
	flags.String("filter", "", "Status filter: Todos, Pendiente, En Progreso, Completada (overrides UADMIN_FILTER)")

	// Server configuration
	flags.String("server-addr", "", "Development server address (overrides UADMIN_SERVER_ADDR)")
	flags.String("db-dir", "", "Development server database directory (overrides UADMIN_DB_DIR)")
	flags.String("db-filename", "", "Development server database filename (overrides UADMIN_DB_FILENAME)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Per-command timeout (overrides UADMIN_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides UADMIN_APP_VERBOSE)")
	flags.String("log-file", "", "Log file of the interactive table (overrides UADMIN_LOG_FILE)")

	// Commands configuration
	flags.String("list-format", "", "Default list format: table or json (overrides UADMIN_LIST_DEFAULT_FORMAT)")
}

// withTimeout wraps a handler with the configured per-command timeout
func (r *RootCommand) withTimeout(run func(ctx context.Context, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
		defer cancel()
		return run(ctx, args)
	}
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.listCommand(),
		r.viewCommand(),
		r.addCommand(),
		r.editCommand(),
		r.deleteCommand(),
		r.taskCommand(),
		r.serveCommand(),
	)
}

func (r *RootCommand) listCommand() *cobra.Command {
	var opts ListOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of users and their tasks",
		Long: `Print one page of the user table.

The filter keeps users with at least one task in that status and only shows
those tasks. --filter and --page-size default to the global configuration.`,
		Args: cobra.NoArgs,
		RunE: r.withTimeout(func(ctx context.Context, args []string) error {
			return NewListCommand(r.app(), opts).Execute(ctx, args)
		}),
	}
	cmd.Flags().IntVar(&opts.Page, "page", 1, "Page number")
	cmd.Flags().StringVar(&opts.Format, "format", "", "Output format: table or json")
	return cmd
}

func (r *RootCommand) viewCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "view <user-id>",
		Short: "Show one user and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: r.withTimeout(func(ctx context.Context, args []string) error {
			return NewViewCommand(r.app(), format).Execute(ctx, args)
		}),
	}
	cmd.Flags().StringVar(&format, "format", FormatTable, "Output format: table or json")
	return cmd
}

func (r *RootCommand) addCommand() *cobra.Command {
	var opts AddOptions
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user with optional tasks",
		Long: `Create a user, then each --task in order.

A task is written "title|description|status"; description and status may be
left out. A task that fails does not stop the others and the user is kept.`,
		Args: cobra.NoArgs,
		RunE: r.withTimeout(func(ctx context.Context, args []string) error {
			return NewAddCommand(r.app(), opts).Execute(ctx, args)
		}),
	}
	cmd.Flags().StringVar(&opts.Name, "name", "", "User name")
	cmd.Flags().StringVar(&opts.Email, "email", "", "User email")
	cmd.Flags().StringVar(&opts.Password, "password", "", "Password: 8+ characters with an uppercase letter and a digit")
	cmd.Flags().StringArrayVar(&opts.Tasks, "task", nil, `Task as "title|description|status" (repeatable)`)
	return cmd
}

func (r *RootCommand) editCommand() *cobra.Command {
	var (
		opts        EditOptions
		name, email string
	)
	cmd := &cobra.Command{
		Use:   "edit <user-id>",
		Short: "Change a user and its tasks",
		Long: `Change a user's name, email and tasks.

Task fields are addressed by task ID, for example --title 12="Nuevo título".
--delete-task and --add-task are sent right away; the other changes are saved
together at the end.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("name") {
				opts.Name = &name
			}
			if cmd.Flags().Changed("email") {
				opts.Email = &email
			}
			return r.withTimeout(NewEditCommand(r.app(), opts).Execute)(cmd, args)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New user name")
	cmd.Flags().StringVar(&email, "email", "", "New user email")
	cmd.Flags().StringToStringVar(&opts.Titles, "title", nil, "Task title by task ID (id=title)")
	cmd.Flags().StringToStringVar(&opts.Descriptions, "description", nil, "Task description by task ID (id=description)")
	cmd.Flags().StringToStringVar(&opts.Statuses, "status", nil, "Task status by task ID (id=status)")
	cmd.Flags().StringArrayVar(&opts.AddTasks, "add-task", nil, `Task to add as "title|description|status" (repeatable)`)
	cmd.Flags().Int64SliceVar(&opts.DeleteTasks, "delete-task", nil, "Task ID to delete (repeatable)")
	return cmd
}

func (r *RootCommand) deleteCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user and its tasks",
		Long:  "Delete a user. The API removes the user's tasks too. This cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE: r.withTimeout(func(ctx context.Context, args []string) error {
			return NewDeleteCommand(r.app(), yes).Execute(ctx, args)
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func (r *RootCommand) taskCommand() *cobra.Command {
	var title, description, status string
	update := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Change a single task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts TaskUpdateOptions
			if cmd.Flags().Changed("title") {
				opts.Title = &title
			}
			if cmd.Flags().Changed("description") {
				opts.Description = &description
			}
			if cmd.Flags().Changed("status") {
				opts.Status = &status
			}
			return r.withTimeout(NewTaskUpdateCommand(r.app(), opts).Execute)(cmd, args)
		},
	}
	update.Flags().StringVar(&title, "title", "", "New title")
	update.Flags().StringVar(&description, "description", "", "New description")
	update.Flags().StringVar(&status, "status", "", "New status: Pendiente, En Progreso, Completada")

	cmd := &cobra.Command{
		Use:   "task",
		Short: "Work with single tasks",
	}
	cmd.AddCommand(update)
	return cmd
}

func (r *RootCommand) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the development users API",
		Long: `Serve the users API over a local sqlite database so the client can be
used without a remote backend. Deleting a user deletes its tasks.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return NewServeCommand(r.app()).Execute(ctx, args)
		},
	}
}

// app builds the handler context. The gateway exists once flags are applied.
func (r *RootCommand) app() *App {
	return NewAppWithIO(r.gateway, r.config, r.in, r.out)
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 60 * time.Second // Default timeout
}

// getConfigFromFlags updates the configuration with values from command-line
// flags, validates it and builds the gateway
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	overrides := r.overridesFromFlags()
	overrides.Apply(r.config)
	if err := r.config.Validate(); err != nil {
		return err
	}
	logging.SetVerbose(r.config.Application.Verbose)

	if r.gateway == nil {
		gw, err := gateway.NewHTTPGateway(r.config.Gateway.BaseURL, gateway.WithTimeout(r.config.Gateway.Timeout))
		if err != nil {
			return NewErrorHandler().Handle("configure gateway", err)
		}
		r.gateway = gw
	}
	return nil
}

// overridesFromFlags collects only the flags that were set explicitly
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	o := &config.ConfigOverrides{}

	if flags.Changed("base-url") {
		v, _ := flags.GetString("base-url")
		o.BaseURL = &v
	}
	if flags.Changed("gateway-timeout") {
		v, _ := flags.GetDuration("gateway-timeout")
		o.GatewayTimeout = &v
	}
	if flags.Changed("page-size") {
		v, _ := flags.GetInt("page-size")
		o.PageSize = &v
	}
	if flags.Changed("filter") {
		v, _ := flags.GetString("filter")
		o.Filter = &v
	}
	if flags.Changed("server-addr") {
		v, _ := flags.GetString("server-addr")
		o.ServerAddr = &v
	}
	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		o.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		o.DBFilename = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		o.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		o.Verbose = &v
	}
	if flags.Changed("log-file") {
		v, _ := flags.GetString("log-file")
		o.LogFile = &v
	}
	if flags.Changed("list-format") {
		v, _ := flags.GetString("list-format")
		o.ListDefaultFormat = &v
	}
	return o
}
