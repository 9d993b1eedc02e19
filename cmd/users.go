package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/momo-data/momo-indexer/config"
	"github.com/momo-data/momo-indexer/db"
	"github.com/momo-data/momo-indexer/db/models"
	"github.com/momo-data/momo-indexer/util"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gorm.io/gorm"
)

var (
	usersConfig       config.StoreConfig
	usersDbConnection *gorm.DB

	userUsername string
	userPassword string
	userEmail    string
)

func init() {
	config.SetupStoreFlags(&usersConfig, usersCmd)

	setupUserFieldFlags(usersCreateCmd)
	_ = usersCreateCmd.MarkFlagRequired("username")
	_ = usersCreateCmd.MarkFlagRequired("password")
	setupUserFieldFlags(usersUpdateCmd)

	usersCmd.AddCommand(usersCreateCmd, usersGetCmd, usersListCmd, usersUpdateCmd, usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}

func setupUserFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&userUsername, "username", "", "username, at most 50 characters")
	cmd.Flags().StringVar(&userPassword, "password", "", "password, stored as given")
	cmd.Flags().StringVar(&userEmail, "email", "", "email address, at most 100 characters")
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manages the users of the MoMo data store.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupStore(&usersConfig)(cmd, args); err != nil {
			return err
		}

		database, err := connectToDBAndMigrate(usersConfig.Database)
		if err != nil {
			return err
		}
		usersDbConnection = database
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if usersDbConnection == nil {
			return
		}
		if sqldb, err := usersDbConnection.DB(); err == nil {
			sqldb.Close()
		}
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Creates a user and prints its ID.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := db.CreateUser(cmd.Context(), usersDbConnection, userUsername, userPassword, util.StrPtrOrNil(userEmail))
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created user with ID: %d\n", id)
		return nil
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Prints a single user.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUserID(args[0])
		if err != nil {
			return err
		}

		user, err := db.GetUserByID(cmd.Context(), usersDbConnection, id)
		if err != nil {
			return err
		}
		if user == nil {
			return fmt.Errorf("user %d not found", id)
		}

		return printJSON(cmd.OutOrStdout(), newUserView(*user))
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "Prints every user ordered by ID.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := db.GetAllUsers(cmd.Context(), usersDbConnection)
		if err != nil {
			return err
		}

		views := make([]userView, 0, len(users))
		for _, user := range users {
			views = append(views, newUserView(user))
		}
		return printJSON(cmd.OutOrStdout(), views)
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Changes the username, password or email of a user.",
	Long: `Changes the fields of a user given on the command line. Fields whose flag is not
	passed keep their value.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUserID(args[0])
		if err != nil {
			return err
		}

		updated, err := db.UpdateUser(cmd.Context(), usersDbConnection, id, patchFromFlags(cmd.Flags()))
		if err != nil {
			return err
		}
		if !updated {
			return fmt.Errorf("user %d not found", id)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Updated user %d\n", id)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Deletes a user.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUserID(args[0])
		if err != nil {
			return err
		}

		deleted, err := db.DeleteUser(cmd.Context(), usersDbConnection, id)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("user %d not found", id)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %d\n", id)
		return nil
	},
}

type userView struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     *string   `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserView(user models.User) userView {
	return userView{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func parseUserID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid user id %q", arg)
	}
	return uint(id), nil
}

// patchFromFlags only reads the flags that were passed, so an explicit empty value is kept.
func patchFromFlags(flags *pflag.FlagSet) db.UserPatch {
	var patch db.UserPatch
	if flags.Changed("username") {
		value, _ := flags.GetString("username")
		patch.Username = &value
	}
	if flags.Changed("password") {
		value, _ := flags.GetString("password")
		patch.Password = &value
	}
	if flags.Changed("email") {
		value, _ := flags.GetString("email")
		patch.Email = &value
	}
	return patch
}

func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "    ")
	return encoder.Encode(v)
}
