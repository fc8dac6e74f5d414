package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/comfortzone/comfortzone-api/internal/auth"
	"github.com/comfortzone/comfortzone-api/internal/database"
	"github.com/comfortzone/comfortzone-api/internal/dto"
	"github.com/comfortzone/comfortzone-api/internal/middleware"
	"github.com/comfortzone/comfortzone-api/internal/models"
	"github.com/comfortzone/comfortzone-api/internal/repository"
	"github.com/comfortzone/comfortzone-api/internal/services"
	"github.com/comfortzone/comfortzone-api/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type socialTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
	tokens *auth.Manager
}

func setupSocialTestEnv(t *testing.T) socialTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Friendship{},
		&models.Invite{},
		&models.DirectMessage{},
		&models.Post{},
		&models.GlobalChallenge{},
		&models.Completion{},
		&models.Group{},
		&models.GroupMember{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	socialRepo := repository.NewSocialRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	groupRepo := repository.NewGroupRepository(db)

	sender := &captureSender{}
	authService := services.NewAuthService(userRepo, sender, "http://localhost:3000")
	socialService := services.NewSocialService(userRepo, socialRepo, inviteRepo, challengeRepo)
	groupService := services.NewGroupService(groupRepo, inviteRepo, userRepo, socialRepo)

	postHandler := NewPostHandler(socialService, authService)
	userHandler := NewUserHandler(socialService)
	groupHandler := NewGroupHandler(groupService, authService)

	tokens := auth.NewManager("test-secret", time.Hour)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/user/:username", userHandler.Profile)
	api.GET("/user/:username/friends", userHandler.UserFriends)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(tokens))
	protected.POST("/posts", postHandler.CreatePost)
	protected.GET("/posts", postHandler.ListPosts)
	protected.POST("/posts/friend-request", postHandler.SendFriendRequest)
	protected.GET("/posts/friends", postHandler.ListFriends)
	protected.GET("/friends", userHandler.MyFriends)
	protected.POST("/dm", userHandler.SendDirectMessage)
	protected.GET("/dm/:friendId", userHandler.ListDirectMessages)
	protected.POST("/groups/invites/:inviteId/respond", groupHandler.RespondToInvite)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return socialTestEnv{
		db:     db,
		router: r,
		tokens: tokens,
	}
}

func (env socialTestEnv) createUser(t *testing.T, email, username string) (*models.User, string) {
	t.Helper()

	user := &models.User{
		Email:         email,
		Username:      username,
		PasswordHash:  "not-checked-here",
		EmailVerified: true,
	}
	require.NoError(t, env.db.Create(user).Error)

	token, err := env.tokens.Issue(user.ID, user.Email)
	require.NoError(t, err)
	return user, token
}

func (env socialTestEnv) befriend(t *testing.T, a, b *models.User) {
	t.Helper()
	require.NoError(t, env.db.Create(&models.Friendship{
		UserID:   a.ID,
		FriendID: b.ID,
	}).Error)
}

func TestFriendRequestAcceptCreatesFriendship(t *testing.T) {
	env := setupSocialTestEnv(t)
	alice, aliceToken := env.createUser(t, "alice@x.com", "alice")
	bob, bobToken := env.createUser(t, "bob@x.com", "bob")

	w := doJSON(t, env.router, http.MethodPost, "/api/posts/friend-request", map[string]string{
		"username": "ghost",
	}, aliceToken)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, env.router, http.MethodPost, "/api/posts/friend-request", map[string]string{
		"username": "alice",
	}, aliceToken)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, env.router, http.MethodPost, "/api/posts/friend-request", map[string]string{
		"username": "bob",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, w.Code)

	var invite dto.InviteDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &invite))
	require.Equal(t, models.InviteTypeFriendRequest, invite.Type)
	require.Equal(t, "alice", invite.Sender.Username)
	require.Nil(t, invite.Group)

	// Duplicate while pending conflicts.
	w = doJSON(t, env.router, http.MethodPost, "/api/posts/friend-request", map[string]string{
		"username": "bob",
	}, aliceToken)
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, env.router, http.MethodPost, "/api/groups/invites/"+itoa(invite.ID)+"/respond", map[string]bool{
		"accepted": true,
	}, bobToken)
	require.Equal(t, http.StatusOK, w.Code)

	var friendship models.Friendship
	err := env.db.Where("user_id = ? AND friend_id = ?", alice.ID, bob.ID).
		First(&friendship).Error
	require.NoError(t, err)

	// The edge is symmetric: a repeat request from either side conflicts.
	w = doJSON(t, env.router, http.MethodPost, "/api/posts/friend-request", map[string]string{
		"username": "alice",
	}, bobToken)
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, env.router, http.MethodGet, "/api/friends", nil, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)

	var friends []dto.PublicUserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &friends))
	require.Len(t, friends, 1)
	require.Equal(t, "bob", friends[0].Username)
}

func TestDirectMessagesRequireFriendship(t *testing.T) {
	env := setupSocialTestEnv(t)
	alice, aliceToken := env.createUser(t, "alice@x.com", "alice")
	bob, bobToken := env.createUser(t, "bob@x.com", "bob")

	w := doJSON(t, env.router, http.MethodPost, "/api/dm", map[string]interface{}{
		"recipientId": bob.ID,
		"content":     "hello?",
	}, aliceToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, env.router, http.MethodGet, "/api/dm/"+itoa(bob.ID), nil, aliceToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	// The edge is stored bob->alice but works in both directions.
	env.befriend(t, bob, alice)

	w = doJSON(t, env.router, http.MethodPost, "/api/dm", map[string]interface{}{
		"recipientId": bob.ID,
		"content":     "made it out the door today",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, env.router, http.MethodPost, "/api/dm", map[string]interface{}{
		"recipientId": alice.ID,
		"content":     "proud of you",
	}, bobToken)
	require.Equal(t, http.StatusCreated, w.Code)

	for _, token := range []string{aliceToken, bobToken} {
		w = doJSON(t, env.router, http.MethodGet, "/api/dm/"+itoa(bob.ID), nil, token)
		if token == bobToken {
			w = doJSON(t, env.router, http.MethodGet, "/api/dm/"+itoa(alice.ID), nil, token)
		}
		require.Equal(t, http.StatusOK, w.Code)

		var messages []dto.DirectMessageDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &messages))
		require.Len(t, messages, 2)
		require.Equal(t, "made it out the door today", messages[0].Content)
		require.Equal(t, "proud of you", messages[1].Content)
	}

	// Messaging bumps the conversation's recency.
	var friendship models.Friendship
	require.NoError(t, env.db.First(&friendship).Error)
	require.NotNil(t, friendship.LastMessageTime)
}

func TestPostsFeedVisibility(t *testing.T) {
	env := setupSocialTestEnv(t)
	alice, aliceToken := env.createUser(t, "alice@x.com", "alice")
	bob, _ := env.createUser(t, "bob@x.com", "bob")
	carol, _ := env.createUser(t, "carol@x.com", "carol")

	env.befriend(t, alice, bob)

	posts := []models.Post{
		{UserID: alice.ID, Content: "alice public", IsPublic: true},
		{UserID: alice.ID, Content: "alice private", IsPublic: false},
		{UserID: bob.ID, Content: "bob private", IsPublic: false},
		{UserID: carol.ID, Content: "carol public", IsPublic: true},
		{UserID: carol.ID, Content: "carol private", IsPublic: false},
	}
	for i := range posts {
		require.NoError(t, env.db.Create(&posts[i]).Error)
	}

	collect := func(token, filter string) []string {
		path := "/api/posts"
		if filter != "" {
			path += "?filter=" + filter
		}
		w := doJSON(t, env.router, http.MethodGet, path, nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		var got []dto.PostDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		out := make([]string, len(got))
		for i, p := range got {
			out[i] = p.Content
		}
		return out
	}

	require.ElementsMatch(t,
		[]string{"alice public", "carol public"},
		collect(aliceToken, "public"))

	// Private feed: own posts plus friends' private posts.
	require.ElementsMatch(t,
		[]string{"alice public", "alice private", "bob private"},
		collect(aliceToken, "private"))

	// Default feed: everything public plus own and friends' private.
	require.ElementsMatch(t,
		[]string{"alice public", "alice private", "bob private", "carol public"},
		collect(aliceToken, ""))
}

func TestCreatePost(t *testing.T) {
	env := setupSocialTestEnv(t)
	_, token := env.createUser(t, "alice@x.com", "alice")

	w := doJSON(t, env.router, http.MethodPost, "/api/posts", map[string]interface{}{
		"content": "jumped in the lake",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	var post dto.PostDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	require.True(t, post.IsPublic)

	w = doJSON(t, env.router, http.MethodPost, "/api/posts", map[string]interface{}{
		"content":  "diary entry",
		"isPublic": false,
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	require.False(t, post.IsPublic)

	w = doJSON(t, env.router, http.MethodPost, "/api/posts", map[string]interface{}{
		"content": "   ",
	}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileExposesStreak(t *testing.T) {
	env := setupSocialTestEnv(t)
	alice, _ := env.createUser(t, "alice@x.com", "alice")
	bob, _ := env.createUser(t, "bob@x.com", "bob")
	env.befriend(t, alice, bob)

	today := utils.DayUTC(time.Now())
	for _, offset := range []int{0, -1, -2} {
		d := today.AddDate(0, 0, offset)
		require.NoError(t, env.db.Create(&models.Completion{
			UserID:      alice.ID,
			ChallengeID: 1,
			Date:        d,
			Completed:   true,
			CompletedAt: d,
		}).Error)
	}

	w := doJSON(t, env.router, http.MethodGet, "/api/user/alice", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var profile dto.ProfileDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	require.Equal(t, "alice", profile.Username)
	require.Equal(t, 3, profile.Streak)

	w = doJSON(t, env.router, http.MethodGet, "/api/user/alice/friends", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var friends []dto.PublicUserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &friends))
	require.Len(t, friends, 1)
	require.Equal(t, "bob", friends[0].Username)

	w = doJSON(t, env.router, http.MethodGet, "/api/user/ghost", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}
