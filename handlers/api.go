package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"antaria-go/games"
	"antaria-go/models"
	"antaria-go/utils"
)

// API is the HTTP collaborator surface over the ledger. It translates JSON
// requests into engine calls and engine errors into status codes; all game
// and money semantics live below it.
type API struct {
	store      *utils.Store
	ledger     *utils.Ledger
	bonuses    *utils.BonusManager
	jackpot    *utils.JackpotManager
	challenges *utils.ChallengeManager
	sessions   *utils.SessionRegistry
	board      *utils.Leaderboard
}

func NewAPI(store *utils.Store, ledger *utils.Ledger, bonuses *utils.BonusManager,
	jackpot *utils.JackpotManager, challenges *utils.ChallengeManager,
	sessions *utils.SessionRegistry, board *utils.Leaderboard) *API {
	return &API{
		store:      store,
		ledger:     ledger,
		bonuses:    bonuses,
		jackpot:    jackpot,
		challenges: challenges,
		sessions:   sessions,
		board:      board,
	}
}

// Router builds the gin engine with every route registered.
func (api *API) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "accounts": api.store.Count()})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	g := r.Group("/api")
	{
		g.POST("/wager", api.placeWager)
		g.POST("/withdraw", api.withdraw)
		g.POST("/referral", api.registerReferral)
		g.POST("/bonus/daily", api.claimDaily)
		g.POST("/bonus/grant", api.grantBonus)
		g.POST("/challenges", api.createChallenge)
		g.GET("/challenges", api.listChallenges)
		g.POST("/challenges/:id/respond", api.respondChallenge)
		g.POST("/session/select", api.selectGame)
		g.POST("/session/stake", api.stakeSession)
		g.GET("/account/:id", api.getAccount)
		g.GET("/leaderboard", api.leaderboard)
		g.GET("/stats", api.stats)
	}
	return r
}

// fail maps engine errors onto status codes.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, utils.ErrInsufficientFunds),
		errors.Is(err, utils.ErrWithdrawalGated):
		status = http.StatusPaymentRequired
	case errors.Is(err, utils.ErrInvalidStake),
		errors.Is(err, games.ErrInvalidPrediction),
		errors.Is(err, games.ErrUnknownGame),
		errors.Is(err, utils.ErrSelfChallenge),
		errors.Is(err, utils.ErrSelfReferral),
		errors.Is(err, utils.ErrAlreadyReferred):
		status = http.StatusBadRequest
	case errors.Is(err, utils.ErrChallengeNotFound):
		status = http.StatusNotFound
	case errors.Is(err, utils.ErrChallengeExpired):
		status = http.StatusGone
	case errors.Is(err, utils.ErrNotChallengeTarget):
		status = http.StatusForbidden
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

type wagerRequest struct {
	AccountID  int64  `json:"account_id" binding:"required"`
	Username   string `json:"username"`
	Game       string `json:"game" binding:"required"`
	Prediction string `json:"prediction"`
	Stake      string `json:"stake" binding:"required"`
}

func (api *API) placeWager(c *gin.Context) {
	var req wagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	api.touch(req.AccountID, req.Username)

	acct := api.store.GetOrCreate(req.AccountID)
	stake, err := utils.ParseStake(req.Stake, acct.Balance)
	if err != nil {
		fail(c, err)
		return
	}

	result, err := api.ledger.PlaceWager(req.AccountID, games.Kind(req.Game), req.Prediction, stake)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type withdrawRequest struct {
	AccountID int64   `json:"account_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
}

func (api *API) withdraw(c *gin.Context) {
	var req withdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := api.ledger.Withdraw(req.AccountID, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type referralRequest struct {
	ReferrerID int64 `json:"referrer_id" binding:"required"`
	RefereeID  int64 `json:"referee_id" binding:"required"`
}

func (api *API) registerReferral(c *gin.Context) {
	var req referralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := api.ledger.RegisterReferral(req.ReferrerID, req.RefereeID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"referrer_bonus": utils.ReferralBonus,
		"referee_bonus":  utils.RefereeBonus,
	})
}

type accountRequest struct {
	AccountID int64  `json:"account_id" binding:"required"`
	Username  string `json:"username"`
}

func (api *API) claimDaily(c *gin.Context) {
	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	api.touch(req.AccountID, req.Username)
	result, err := api.bonuses.ClaimDaily(req.AccountID)
	if err != nil {
		fail(c, err)
		return
	}
	status := http.StatusOK
	if !result.Success {
		status = http.StatusTooManyRequests
	}
	c.JSON(status, result)
}

type grantRequest struct {
	AccountID int64   `json:"account_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required"`
	Multiple  float64 `json:"playthrough_multiple"`
}

func (api *API) grantBonus(c *gin.Context) {
	var req grantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Multiple <= 0 {
		req.Multiple = utils.DefaultPlaythroughMultiple
	}
	acct, err := api.bonuses.GrantLockedBonus(req.AccountID, req.Amount, req.Multiple)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, accountView(req.AccountID, acct))
}

type challengeRequest struct {
	ChallengerID   int64   `json:"challenger_id" binding:"required"`
	TargetUsername string  `json:"target_username" binding:"required"`
	Amount         float64 `json:"amount" binding:"required"`
	Number         int     `json:"number" binding:"required"`
}

func (api *API) createChallenge(c *gin.Context) {
	var req challengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ch, err := api.challenges.Create(req.ChallengerID, req.TargetUsername, req.Amount, req.Number)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, ch)
}

func (api *API) listChallenges(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"challenges": api.challenges.Open()})
}

type respondRequest struct {
	TargetID       int64  `json:"target_id" binding:"required"`
	TargetUsername string `json:"target_username" binding:"required"`
	Accept         bool   `json:"accept"`
	Number         int    `json:"number"` // required when accepting
}

func (api *API) respondChallenge(c *gin.Context) {
	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	outcome, err := api.challenges.Respond(c.Param("id"), req.TargetID, req.TargetUsername, req.Accept, req.Number)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

type selectRequest struct {
	AccountID  int64  `json:"account_id" binding:"required"`
	Game       string `json:"game" binding:"required"`
	Prediction string `json:"prediction"`
}

// selectGame records a game choice so a bare stake can follow.
func (api *API) selectGame(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	kind := games.Kind(req.Game)
	if err := games.ValidatePrediction(kind, req.Prediction); err != nil {
		fail(c, err)
		return
	}
	api.sessions.Set(req.AccountID, models.AwaitingStake{Game: string(kind), Prediction: req.Prediction})
	c.JSON(http.StatusOK, gin.H{"awaiting": "stake", "game": kind, "prediction": req.Prediction})
}

type stakeRequest struct {
	AccountID int64  `json:"account_id" binding:"required"`
	Stake     string `json:"stake" binding:"required"`
}

// stakeSession consumes the pending game selection and places the wager.
func (api *API) stakeSession(c *gin.Context) {
	var req stakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	action, ok := api.sessions.Pop(req.AccountID)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "no game selected"})
		return
	}
	awaiting, ok := action.(models.AwaitingStake)
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "pending action is not a game selection"})
		return
	}

	acct := api.store.GetOrCreate(req.AccountID)
	stake, err := utils.ParseStake(req.Stake, acct.Balance)
	if err != nil {
		fail(c, err)
		return
	}
	result, err := api.ledger.PlaceWager(req.AccountID, games.Kind(awaiting.Game), awaiting.Prediction, stake)
	if err != nil {
		// Stake was bad; give the selection back so the player can retry.
		api.sessions.Set(req.AccountID, awaiting)
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (api *API) getAccount(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return
	}
	acct, ok := api.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}
	c.JSON(http.StatusOK, accountView(id, acct))
}

func (api *API) leaderboard(c *gin.Context) {
	n := utils.LeaderboardSize
	if raw := c.Query("n"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			n = parsed
		}
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": api.board.Top(n)})
}

func (api *API) stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"stats":        api.store.Stats(),
		"jackpot_pool": api.jackpot.Pool(),
		"accounts":     api.store.Count(),
	})
}

// touch refreshes the stored username when the collaborator supplies one.
func (api *API) touch(accountID int64, username string) {
	if username == "" {
		return
	}
	_ = api.store.WithAccount(accountID, func(a *models.Account) error {
		a.Username = username
		return nil
	})
}

// accountView flattens an account plus its derived fields for responses.
func accountView(id int64, a *models.Account) gin.H {
	return gin.H{
		"account_id":           id,
		"username":             a.Username,
		"balance":              a.Balance,
		"total_wagered":        a.TotalWagered,
		"total_won":            a.TotalWon,
		"games_played":         a.GamesPlayed,
		"biggest_bet":          a.BiggestBet,
		"win_streak":           a.WinStreak,
		"max_win_streak":       a.MaxWinStreak,
		"xp":                   a.XP,
		"level":                a.Level,
		"rank":                 utils.RankForLevel(a.Level),
		"bonus_locked":         a.BonusLocked,
		"playthrough_required": a.PlaythroughRequired,
		"bonus_wagered":        a.BonusWagered,
		"withdrawable":         a.Withdrawable(),
		"bonus_streak":         a.BonusStreak,
		"achievements":         a.Achievements,
		"referrals":            a.Referrals,
		"created_at":           a.CreatedAt,
		"last_seen":            a.LastSeen,
	}
}
