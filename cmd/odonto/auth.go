package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Veraticus/odonto-flow/internal/cli"
	"github.com/Veraticus/odonto-flow/internal/common"
	"github.com/Veraticus/odonto-flow/internal/config"
	"github.com/Veraticus/odonto-flow/internal/sheets"
)

func authCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the clinic API session and Google access",
		Long: `Log in to the clinic API, inspect or drop the stored session token, and
authorize Google Sheets exports.`,
	}

	cmd.AddCommand(authLoginCmd())
	cmd.AddCommand(authTokenCmd())
	cmd.AddCommand(authStatusCmd())
	cmd.AddCommand(authLogoutCmd())
	cmd.AddCommand(authGoogleCmd())

	return cmd
}

func authLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with e-mail and password and store the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			reader := cli.NewLineReader(cmd.InOrStdin(), cmd.OutOrStdout())

			email, _ := cmd.Flags().GetString("email")
			if strings.TrimSpace(email) == "" {
				var err error
				if email, err = reader.AskRequired(ctx, "E-mail"); err != nil {
					return err
				}
			}
			password, err := readPassword(cmd, reader)
			if err != nil {
				return err
			}

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			token, err := sess.client.Login(ctx, strings.TrimSpace(email), password)
			if err != nil {
				if errors.Is(err, common.ErrUnauthorized) {
					return common.NewUserError("E-mail ou senha inválidos", err)
				}
				return fmt.Errorf("failed to log in: %w", err)
			}
			if err := sess.store.SaveToken(ctx, token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), successLine("Login realizado"))
			printTokenInfo(cmd, token)
			return nil
		},
	}
	cmd.Flags().String("email", "", "account e-mail")
	return cmd
}

// readPassword hides the input on a terminal and reads a plain line otherwise.
func readPassword(cmd *cobra.Command, reader *cli.LineReader) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.OutOrStdout(), cli.FormatPrompt("Senha"))
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		if len(raw) == 0 {
			return "", cli.ErrEmptyInput
		}
		return string(raw), nil
	}
	return reader.AskRequired(cmd.Context(), "Senha")
}

func authTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <value>",
		Short: "Store a session token obtained elsewhere",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			token := strings.TrimPrefix(strings.TrimSpace(args[0]), "Bearer ")

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.store.SaveToken(ctx, token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), successLine("Token salvo"))
			printTokenInfo(cmd, token)
			return nil
		},
	}
}

func authStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored session and when it expires",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			token, err := sess.store.GetToken(ctx)
			if errors.Is(err, common.ErrNoToken) {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("Nenhuma sessão salva. Use 'odonto auth login'."))
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read token: %w", err)
			}

			var body strings.Builder
			fmt.Fprintln(&body, "API: "+sess.settings.APIBaseURL)
			writeTokenInfo(&body, token)
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBox(cli.KeyIcon+" Sessão", strings.TrimRight(body.String(), "\n")))
			return nil
		},
	}
}

func authLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer sess.Close()

			if err := sess.store.DeleteToken(ctx); err != nil {
				return fmt.Errorf("failed to delete token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), successLine("Sessão encerrada"))
			return nil
		},
	}
}

// TokenInfo is what can be read from a session token without its key.
type TokenInfo struct {
	ExpiresAt *time.Time
	IssuedAt  *time.Time
	Subject   string
}

// Expired reports whether the token carries an expiry before now.
func (i TokenInfo) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && !i.ExpiresAt.After(now)
}

// inspectToken reads the registered claims without verifying the signature;
// the server remains the authority on validity.
func inspectToken(token string) (TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("token is not a JWT: %w", err)
	}

	var info TokenInfo
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		info.ExpiresAt = &t
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		t := iat.Time
		info.IssuedAt = &t
	}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	return info, nil
}

func printTokenInfo(cmd *cobra.Command, token string) {
	writeTokenInfo(cmd.OutOrStdout(), token)
}

func writeTokenInfo(out io.Writer, token string) {
	info, err := inspectToken(token)
	if err != nil {
		fmt.Fprintln(out, cli.FormatWarning("Token salvo, mas sem claims legíveis"))
		return
	}

	if info.Subject != "" {
		fmt.Fprintln(out, cli.FormatInfo("Usuário: "+info.Subject))
	}
	if info.IssuedAt != nil {
		fmt.Fprintln(out, cli.FormatInfo("Emitido em "+info.IssuedAt.Local().Format("02/01/2006 15:04")))
	}
	now := clock()
	switch {
	case info.ExpiresAt == nil:
		fmt.Fprintln(out, cli.FormatInfo("Token sem data de expiração"))
	case info.Expired(now):
		fmt.Fprintln(out, cli.FormatWarning("Token expirado em "+info.ExpiresAt.Local().Format("02/01/2006 15:04")+". Faça login novamente."))
	default:
		remaining := info.ExpiresAt.Sub(now).Round(time.Minute)
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("%s Válido até %s (%s restantes)",
			cli.KeyIcon, info.ExpiresAt.Local().Format("02/01/2006 15:04"), remaining)))
	}
}

func authGoogleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "google",
		Short: "Authorize Google Sheets exports",
		Long: `Run the Google OAuth2 consent flow in the browser and save the refresh
token used by '--export sheets'. Requires sheets.client_id and
sheets.client_secret (or GOOGLE_SHEETS_CLIENT_ID / GOOGLE_SHEETS_CLIENT_SECRET).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			cfg := config.LoadOAuth2Config(viper.GetViper())
			if cfg.ClientID == "" || cfg.ClientSecret == "" {
				return common.NewUserError("Configure sheets.client_id e sheets.client_secret antes de autorizar", common.ErrMissingConfig)
			}

			token, err := sheets.GetOrCreateToken(cmd.Context(), cfg, func(url string) {
				fmt.Fprintln(out, cli.FormatInfo("Abra este endereço no navegador para autorizar o acesso:"))
				fmt.Fprintln(out, url)
			})
			if err != nil {
				return fmt.Errorf("google authorization failed: %w", err)
			}
			if token.RefreshToken == "" {
				return common.NewUserError("O Google não devolveu um refresh token; revogue o acesso e tente novamente", common.ErrInvalidConfig)
			}

			fmt.Fprintln(out, successLine("Google Sheets autorizado; token salvo em "+cfg.TokenFile))
			return nil
		},
	}
}
