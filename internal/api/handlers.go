package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mpetrenko/go-messenger/internal/database"
	"github.com/mpetrenko/go-messenger/internal/stats"
	"github.com/mpetrenko/go-messenger/internal/types"
)

type SendMessageRequest struct {
	ReceiverId string `json:"receiver_id"`
	Text       string `json:"text"`
}

type AddFavoriteRequest struct {
	Type     string  `json:"type"`
	Text     *string `json:"text"`
	FileUrl  *string `json:"file_url"`
	VoiceUrl *string `json:"voice_url"`
	Orig     any     `json:"orig"`
}

type UpdateProfileRequest struct {
	NewUsername string `json:"new_username"`
}

func (s *MessengerApp) writeJson(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Printf("json encode: %v", err)
	}
}

func (s *MessengerApp) healthCheck(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		s.log.Printf("ping database: %v", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func nullToPtr(ns sql.NullString) *string {
	if ns.Valid {
		return &ns.String
	}
	return nil
}

func ptrToNull(p *string) sql.NullString {
	if p != nil {
		return sql.NullString{String: *p, Valid: true}
	}
	return sql.NullString{}
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func (s *MessengerApp) listUsers(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	dbUsers, err := s.db.ListAccountsExcept(userId)
	if err != nil {
		s.log.Println("list accounts:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	users := make([]types.UserSummary, 0, len(dbUsers))
	for _, u := range dbUsers {
		users = append(users, types.UserSummary{
			Id:         u.Id,
			Username:   u.Username,
			Avatar:     nullToPtr(u.Avatar),
			LastOnline: u.LastOnline,
		})
	}

	s.writeJson(w, http.StatusOK, map[string]any{"users": users})
}

func (s *MessengerApp) profile(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	user, err := s.db.GetAccountById(userId)
	if err != nil {
		var errResp *ApiError
		if errors.Is(err, database.ErrNotFound) {
			errResp = NewUserNotFoundError()
		} else {
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, types.Profile{
		UserId:               user.Id,
		Username:             user.Username,
		Email:                user.EmailAddress,
		Avatar:               nullToPtr(user.Avatar),
		LastOnline:           user.LastOnline,
		InvisibleMode:        user.InvisibleMode,
		HideLastSeen:         user.HideLastSeen,
		HideProfileInfo:      user.HideProfileInfo,
		Theme:                user.Theme,
		CustomPrimaryColor:   user.CustomPrimaryColor,
		CustomSecondaryColor: user.CustomSecondaryColor,
	})
}

// getConversation returns the caller's thread with the other user, oldest
// first. Retrieval is never a pure read: unread incoming messages are
// marked read by the same repository call, while the response still shows
// the is_read value observed at query time.
func (s *MessengerApp) getConversation(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	otherId := r.PathValue("userId")
	if otherId == "" {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	dbMessages, err := s.db.GetConversation(userId, otherId)
	if err != nil {
		s.log.Println("get conversation:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	messages := make([]types.Message, 0, len(dbMessages))
	for _, msg := range dbMessages {
		messages = append(messages, types.Message{
			Id:         msg.Id,
			SenderId:   msg.SenderId,
			ReceiverId: msg.ReceiverId,
			Text:       msg.Body,
			Timestamp:  msg.CreatedAt,
			IsRead:     msg.IsRead,
		})
	}

	s.writeJson(w, http.StatusOK, map[string]any{"messages": messages})
}

func (s *MessengerApp) sendMessage(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.ReceiverId == "" {
		errResp := NewValidationError(map[string]string{"receiver_id": "required"})
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	msg, err := s.db.CreateMessage(userId, req.ReceiverId, req.Text)
	if err != nil {
		s.log.Println("create message:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.stats.Incr(stats.MetricMessagesSent)

	s.writeJson(w, http.StatusOK, types.Message{
		Id:         msg.Id,
		SenderId:   msg.SenderId,
		ReceiverId: msg.ReceiverId,
		Text:       msg.Body,
		Timestamp:  msg.CreatedAt,
		IsRead:     msg.IsRead,
	})
}

func favoriteResponse(fav database.Favorite) types.Favorite {
	f := types.Favorite{
		Id:        fav.Id,
		Type:      fav.Type,
		Text:      nullToPtr(fav.Body),
		FileUrl:   nullToPtr(fav.FileUrl),
		VoiceUrl:  nullToPtr(fav.VoiceUrl),
		Timestamp: epochSeconds(fav.CreatedAt),
	}

	if fav.Orig.Valid {
		var orig any
		if err := json.Unmarshal([]byte(fav.Orig.String), &orig); err != nil {
			// unparseable snapshot: surface the raw stored text instead
			// of failing the whole listing
			f.Orig = fav.Orig.String
		} else {
			f.Orig = orig
		}
	}

	return f
}

func (s *MessengerApp) listFavorites(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	dbFavorites, err := s.db.ListFavorites(userId)
	if err != nil {
		s.log.Println("list favorites:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	favorites := make([]types.Favorite, 0, len(dbFavorites))
	for _, fav := range dbFavorites {
		favorites = append(favorites, favoriteResponse(fav))
	}

	s.writeJson(w, http.StatusOK, map[string]any{"favorites": favorites})
}

func (s *MessengerApp) addFavorite(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req AddFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	favType := req.Type
	if favType == "" {
		favType = "text"
	}

	// type does not constrain which content fields are set; callers may
	// pass any combination of text/file_url/voice_url
	params := database.CreateFavoriteParams{
		UserId:   userId,
		Type:     favType,
		Body:     ptrToNull(req.Text),
		FileUrl:  ptrToNull(req.FileUrl),
		VoiceUrl: ptrToNull(req.VoiceUrl),
	}

	if req.Orig != nil {
		orig, err := json.Marshal(req.Orig)
		if err != nil {
			errResp := NewBadRequestError()
			s.writeJson(w, errResp.StatusCode, errResp)
			return
		}
		params.Orig = sql.NullString{String: string(orig), Valid: true}
	}

	if _, err := s.db.CreateFavorite(params); err != nil {
		s.log.Println("create favorite:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.stats.Incr(stats.MetricFavoritesAdded)

	s.writeJson(w, http.StatusOK, map[string]string{"status": "ok"})
}

// upload stores a multipart file and returns its public URL. The token is
// checked before anything touches disk; an image upload additionally
// becomes the uploader's avatar when the token resolves, and is silently
// left as a plain upload when it does not.
func (s *MessengerApp) upload(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(tokenQueryParam)
	if token == "" {
		errResp := NewMissingTokenError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		errResp := NewValidationError(map[string]string{"file": "required"})
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}
	defer file.Close()

	url, err := s.files.Save(header.Filename, file)
	if err != nil {
		s.log.Println("save upload:", err)
		errResp := NewInternalServerError(err)
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.stats.Incr(stats.MetricUploads)

	if strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		userId, ok, err := s.sessions.Validate(r.Context(), token)
		if err == nil && ok {
			if err := s.db.UpdateAvatar(userId, url); err != nil {
				s.log.Println("update avatar:", err)
			}
		}
	}

	s.writeJson(w, http.StatusOK, map[string]string{"url": url})
}

func (s *MessengerApp) updateProfile(w http.ResponseWriter, r *http.Request) {
	userId, ok := UserId(r.Context())
	if !ok {
		errResp := NewUnauthorizedError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errResp := NewBadRequestError()
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if req.NewUsername == "" {
		errResp := NewValidationError(map[string]string{"new_username": "required"})
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	if err := s.db.UpdateUsername(userId, req.NewUsername); err != nil {
		var errResp *ApiError
		switch {
		case errors.Is(err, database.ErrUsernameTaken):
			errResp = NewUsernameTakenError()
		case errors.Is(err, database.ErrNotFound):
			errResp = NewUserNotFoundError()
		default:
			errResp = NewInternalServerError(err)
		}
		s.writeJson(w, errResp.StatusCode, errResp)
		return
	}

	s.writeJson(w, http.StatusOK, map[string]bool{"ok": true})
}
