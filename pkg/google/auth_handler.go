package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/69GliTcH/SimpliFin/internal/config"
	"github.com/69GliTcH/SimpliFin/internal/rest"
	"github.com/69GliTcH/SimpliFin/pkg/user"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

type googleAuthRedirect struct {
	RedirectUrl string `json:"redirectUrl"`
}

// GoogleAuth implements sign-in with Google: the login endpoint hands out the
// consent URL, the callback exchanges the code, resolves the Google profile,
// and links or creates the matching user.
type GoogleAuth struct {
	db          *pgxpool.Pool
	userService user.Service
	oauthConfig *oauth2.Config
}

func NewGoogleAuth(db *pgxpool.Pool, userService user.Service, cfg config.Application) *GoogleAuth {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Google.ClientId,
		ClientSecret: cfg.Google.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  cfg.Host + "/api/auth/google/callback",
		Scopes:       []string{oauth2api.UserinfoEmailScope, oauth2api.UserinfoProfileScope},
	}

	return &GoogleAuth{db: db, userService: userService, oauthConfig: oauthConfig}
}

// OAuthLogin godoc
// @Summary Start Google sign-in
// @Description Returns the Google consent URL the client should redirect to
// @Tags Auth
// @Produce json
// @Param finalUrl query string false "URL to return to after sign-in"
// @Success 200 {object} googleAuthRedirect
// @Router /api/auth/google/login [get]
func (g *GoogleAuth) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	stateNonce := uuid.New().String()
	finalUrl := r.URL.Query().Get("finalUrl")

	// store nonce to verify the callback state
	_, err := g.db.Exec(r.Context(), "INSERT INTO google_auth (nonce) VALUES ($1)", stateNonce)
	if err != nil {
		log.Errorf("failed to store Google auth nonce: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Failed to handle Google authentication",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	log.Tracef("Redirecting to Google auth URL with nonce: %s", stateNonce)
	u := g.oauthConfig.AuthCodeURL(finalUrl+"|"+stateNonce, oauth2.AccessTypeOffline)

	w.WriteHeader(http.StatusOK)
	encodeErr := json.NewEncoder(w).Encode(googleAuthRedirect{
		RedirectUrl: u,
	})
	if encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}

// OAuthCallback godoc
// @Summary Finish Google sign-in
// @Description Exchanges the authorization code, resolves the Google profile,
// @Description and redirects back to the client with the signed-in user's uid
// @Tags Auth
// @Param code query string true "Authorization code"
// @Param state query string true "Opaque state from the login step"
// @Success 302
// @Router /api/auth/google/callback [get]
func (g *GoogleAuth) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("code")
	state := r.FormValue("state")

	parts := strings.SplitN(state, "|", 2)
	if len(parts) != 2 {
		http.Error(w, "invalid state", http.StatusBadRequest)
		return
	}
	finalUrl := parts[0]
	nonce := parts[1]

	tag, err := g.db.Exec(r.Context(), "DELETE FROM google_auth WHERE nonce = $1", nonce)
	if err != nil || tag.RowsAffected() == 0 {
		log.Errorf("unknown Google auth nonce %s: %v", nonce, err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	token, err := g.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		log.Errorf("unable to exchange code for token: %v", err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	profile, err := g.fetchProfile(r.Context(), token)
	if err != nil {
		log.Error(err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	signedInUser, err := g.userService.EnsureGoogleUser(r.Context(),
		profile.Id, profile.Email, profile.Name, profile.Picture)
	if err != nil {
		log.Errorf("failed to resolve user for Google subject: %v", err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	log.Debugf("Google sign-in completed for user %d", signedInUser.Id)
	http.Redirect(w, r, finalUrl+"?success=true&uid="+signedInUser.Uid, http.StatusFound)
}

// fetchProfile reads the Google profile of the token owner.
func (g *GoogleAuth) fetchProfile(ctx context.Context, token *oauth2.Token) (*oauth2api.Userinfo, error) {
	service, err := oauth2api.NewService(ctx,
		option.WithTokenSource(g.oauthConfig.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Google userinfo client: %v", err)
	}
	profile, err := service.Userinfo.Get().Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Google profile: %v", err)
	}
	if profile.Id == "" {
		return nil, fmt.Errorf("google profile has no subject")
	}
	return profile, nil
}
