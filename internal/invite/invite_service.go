package invite

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/squadup/internal/team"
	"github.com/DhavalSuthar-24/squadup/internal/user"
	"github.com/DhavalSuthar-24/squadup/pkg/apperrors"
	"github.com/DhavalSuthar-24/squadup/pkg/mailer"
	"github.com/DhavalSuthar-24/squadup/pkg/metrics"
	"github.com/DhavalSuthar-24/squadup/pkg/notify"
	"github.com/DhavalSuthar-24/squadup/pkg/token"
	"github.com/DhavalSuthar-24/squadup/pkg/utils"
)

const placeholderEmailDomain = "placeholder.squadup.invalid"

type CreateTeamInviteRequest struct {
	Role         string `json:"role" binding:"omitempty,oneof=trainer player staff"`
	TTLDays      *int   `json:"ttl_days" binding:"omitempty,gte=1,lte=365"`
	MaxUses      *int   `json:"max_uses" binding:"omitempty,gte=1"`
	PlayerName   string `json:"player_name" binding:"max=100"`
	BirthDate    string `json:"birth_date"` // YYYY-MM-DD
	JerseyNumber *int   `json:"jersey_number" binding:"omitempty,gte=0,lte=999"`
}

type CreateTrainerInviteRequest struct {
	TeamIDs []uint `json:"team_ids" binding:"required,min=1"`
	Email   string `json:"email" binding:"omitempty,email"`
	Name    string `json:"name" binding:"max=100"`
	TTLDays *int   `json:"ttl_days" binding:"omitempty,gte=1,lte=365"`
}

// Registration carries the account data of an unauthenticated invitee.
type Registration struct {
	Username  string `json:"username" binding:"omitempty,min=3,max=50"`
	Email     string `json:"email" binding:"omitempty,email"`
	Password  string `json:"password" binding:"omitempty,min=8,max=72"`
	Name      string `json:"name" binding:"max=100"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD
}

func (r *Registration) empty() bool {
	return r == nil || (r.Username == "" && r.Email == "" && r.Password == "")
}

// LookupResult describes an invite to the person holding its token.
type LookupResult struct {
	Kind          string         `json:"kind"`
	State         string         `json:"state"`
	Teams         []team.Team    `json:"teams"`
	TeamInvite    *TeamInvite    `json:"team_invite,omitempty"`
	TrainerInvite *TrainerInvite `json:"trainer_invite,omitempty"`
}

// AcceptResult reports who joined which teams. NewAccount is set when the
// caller had no session before accepting.
type AcceptResult struct {
	Kind       string     `json:"kind"`
	User       *user.User `json:"user"`
	TeamIDs    []uint     `json:"team_ids"`
	Role       string     `json:"role"`
	NewAccount bool       `json:"new_account"`
}

// InviteView is an invite as listed for a team, with its computed state.
type InviteView struct {
	Kind          string         `json:"kind"`
	State         string         `json:"state"`
	URL           string         `json:"url"`
	TeamInvite    *TeamInvite    `json:"team_invite,omitempty"`
	TrainerInvite *TrainerInvite `json:"trainer_invite,omitempty"`
}

type Service struct {
	db        *gorm.DB
	seeder    team.MemberSeeder
	publisher notify.Publisher
	mail      mailer.Mailer
	log       *zap.Logger
	now       func() time.Time
}

func NewService(db *gorm.DB, seeder team.MemberSeeder, publisher notify.Publisher, mail mailer.Mailer, log *zap.Logger) *Service {
	return &Service{
		db:        db,
		seeder:    seeder,
		publisher: publisher,
		mail:      mail,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// URL is the frontend link for token.
func URL(baseURL, tok string) string {
	return strings.TrimRight(baseURL, "/") + "/invite/" + tok
}

// CreateTeamInvite issues an invite for one team. Admins issue trainer
// invites, trainers of the team issue player invites.
func (s *Service) CreateTeamInvite(ctx context.Context, actor user.Actor, teamID uint, req CreateTeamInviteRequest) (*TeamInvite, error) {
	teams := team.NewTeamRepository(s.db)
	if _, err := team.RequireTeam(ctx, teams, teamID); err != nil {
		return nil, err
	}

	role := req.Role
	if actor.IsAdmin() {
		if role == "" {
			role = team.MemberRoleTrainer
		}
		if role != team.MemberRoleTrainer {
			return nil, apperrors.Forbidden("admins can only create trainer invites")
		}
	} else {
		if err := team.RequireTrainer(ctx, teams, actor, teamID); err != nil {
			return nil, err
		}
		if role == "" {
			role = team.MemberRolePlayer
		}
		if role != team.MemberRolePlayer {
			return nil, apperrors.Forbidden("trainers can only create player invites")
		}
	}

	if req.MaxUses != nil && *req.MaxUses < 1 {
		return nil, apperrors.Validation("max_uses must be at least 1")
	}
	birthDate, err := parseDate("birth_date", req.BirthDate)
	if err != nil {
		return nil, err
	}
	expiresAt, err := s.expiry(req.TTLDays)
	if err != nil {
		return nil, err
	}
	tok, err := token.GenerateInviteToken()
	if err != nil {
		return nil, apperrors.Internal("failed to generate invite token", err)
	}

	inv := &TeamInvite{
		TeamID:       teamID,
		Token:        tok,
		Role:         role,
		ExpiresAt:    expiresAt,
		MaxUses:      req.MaxUses,
		PlayerName:   strings.TrimSpace(req.PlayerName),
		BirthDate:    birthDate,
		JerseyNumber: req.JerseyNumber,
		CreatedByID:  actor.UserID,
	}
	if err := NewInviteRepository(s.db).CreateTeamInvite(ctx, inv); err != nil {
		return nil, apperrors.Internal("failed to create invite", err)
	}
	s.log.Info("team invite created", zap.Uint("team_id", teamID), zap.String("role", role), zap.Uint("by", actor.UserID))
	return inv, nil
}

// CreateTrainerInvite issues a single-use invite covering several teams and
// creates the placeholder account the invitee will claim. When an e-mail is
// given the link is mailed to it.
func (s *Service) CreateTrainerInvite(ctx context.Context, actor user.Actor, req CreateTrainerInviteRequest, baseURL string) (*TrainerInvite, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("only admins can create trainer invites")
	}
	teamIDs := dedupe(req.TeamIDs)
	if len(teamIDs) == 0 {
		return nil, apperrors.Validation("at least one team is required")
	}
	n, err := team.NewTeamRepository(s.db).CountTeams(ctx, teamIDs)
	if err != nil {
		return nil, apperrors.Internal("failed to load teams", err)
	}
	if n != int64(len(teamIDs)) {
		return nil, apperrors.NotFound("team")
	}
	expiresAt, err := s.expiry(req.TTLDays)
	if err != nil {
		return nil, err
	}

	var inv *TrainerInvite
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		placeholder, err := newPlaceholder(req.Name)
		if err != nil {
			return err
		}
		if err := user.NewUserRepository(tx).CreateUser(ctx, placeholder); err != nil {
			return apperrors.Internal("failed to create placeholder account", err)
		}

		tok, err := token.GenerateInviteToken()
		if err != nil {
			return apperrors.Internal("failed to generate invite token", err)
		}
		inv = &TrainerInvite{
			Token:       tok,
			TeamIDs:     teamIDs,
			UserID:      &placeholder.ID,
			Email:       strings.ToLower(strings.TrimSpace(req.Email)),
			Name:        strings.TrimSpace(req.Name),
			ExpiresAt:   expiresAt,
			CreatedByID: actor.UserID,
		}
		if err := NewInviteRepository(tx).CreateTrainerInvite(ctx, inv); err != nil {
			return apperrors.Internal("failed to create invite", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if inv.Email != "" && baseURL != "" {
		link := URL(baseURL, inv.Token)
		body := fmt.Sprintf(`<p>You have been invited to join SquadUp as a trainer.</p><p><a href="%s">Accept the invitation</a></p>`, link)
		if err := s.mail.Send(ctx, inv.Email, "Your SquadUp trainer invitation", body); err != nil {
			s.log.Warn("trainer invite mail failed", zap.Uint("invite_id", inv.ID), zap.Error(err))
		}
	}
	s.log.Info("trainer invite created", zap.Uint("invite_id", inv.ID), zap.Int("teams", len(teamIDs)), zap.Uint("by", actor.UserID))
	return inv, nil
}

// Lookup finds the invite behind tok without changing it. Trainer invites are
// checked first.
func (s *Service) Lookup(ctx context.Context, tok string) (*LookupResult, error) {
	repo := NewInviteRepository(s.db)
	teams := team.NewTeamRepository(s.db)
	now := s.now()

	tr, err := repo.GetTrainerInviteByToken(ctx, tok)
	if err != nil {
		return nil, apperrors.Internal("failed to load invite", err)
	}
	if tr != nil {
		res := &LookupResult{Kind: KindTrainer, State: tr.State(now), TrainerInvite: tr}
		for _, id := range tr.TeamIDs {
			t, err := teams.GetTeamByID(ctx, id)
			if err != nil {
				return nil, apperrors.Internal("failed to load team", err)
			}
			if t != nil {
				res.Teams = append(res.Teams, *t)
			}
		}
		return res, nil
	}

	ti, err := repo.GetTeamInviteByToken(ctx, tok)
	if err != nil {
		return nil, apperrors.Internal("failed to load invite", err)
	}
	if ti == nil {
		return nil, apperrors.NotFound("invite")
	}
	res := &LookupResult{Kind: KindTeam, State: ti.State(now), TeamInvite: ti}
	t, err := teams.GetTeamByID(ctx, ti.TeamID)
	if err != nil {
		return nil, apperrors.Internal("failed to load team", err)
	}
	if t != nil {
		res.Teams = []team.Team{*t}
	}
	return res, nil
}

// Accept redeems tok for the authenticated actor or, without one, for a new
// account built from reg.
func (s *Service) Accept(ctx context.Context, tok string, actor *user.Actor, reg *Registration) (*AcceptResult, error) {
	if strings.TrimSpace(tok) == "" {
		return nil, apperrors.Validation("invite token is required")
	}

	var res *AcceptResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := NewInviteRepository(tx)
		tr, err := repo.GetTrainerInviteByToken(ctx, tok)
		if err != nil {
			return apperrors.Internal("failed to load invite", err)
		}
		if tr != nil {
			res, err = s.acceptTrainer(ctx, tx, tr, actor, reg)
			return err
		}
		ti, err := repo.GetTeamInviteByToken(ctx, tok)
		if err != nil {
			return apperrors.Internal("failed to load invite", err)
		}
		if ti == nil {
			return apperrors.NotFound("invite")
		}
		res, err = s.acceptTeam(ctx, tx, ti, actor, reg)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.InvitesAccepted.WithLabelValues(res.Kind).Inc()
	notify.Emit(ctx, s.log, s.publisher, notify.SubjectInvitesAccepted, map[string]any{
		"kind":     res.Kind,
		"user_id":  res.User.ID,
		"team_ids": res.TeamIDs,
		"role":     res.Role,
	})
	s.log.Info("invite accepted", zap.String("kind", res.Kind), zap.Uint("user_id", res.User.ID), zap.Uints("team_ids", res.TeamIDs))
	return res, nil
}

func (s *Service) acceptTeam(ctx context.Context, tx *gorm.DB, inv *TeamInvite, actor *user.Actor, reg *Registration) (*AcceptResult, error) {
	now := s.now()
	if err := inv.Validate(now); err != nil {
		return nil, err
	}
	teams := team.NewTeamRepository(tx)
	if _, err := team.RequireTeam(ctx, teams, inv.TeamID); err != nil {
		return nil, err
	}

	repo := NewInviteRepository(tx)
	ok, err := repo.ConsumeTeamInvite(ctx, inv.ID, now)
	if err != nil {
		return nil, apperrors.Internal("failed to consume invite", err)
	}
	if !ok {
		return nil, s.classifyTeamInvite(ctx, repo, inv.ID, now)
	}

	users := user.NewUserRepository(tx)
	var (
		u          *user.User
		newAccount bool
	)
	if actor != nil {
		u, err = users.GetUserByID(ctx, actor.UserID)
		if err != nil {
			return nil, apperrors.Internal("failed to load user", err)
		}
		if u == nil {
			return nil, apperrors.Unauthorized("user not found")
		}
	} else {
		if reg.empty() {
			return nil, apperrors.Validation("registration data is required")
		}
		globalRole := user.RolePlayer
		if inv.Role == team.MemberRoleTrainer {
			globalRole = user.RoleTrainer
		}
		name := reg.Name
		if name == "" {
			name = inv.PlayerName
		}
		u, err = s.register(ctx, users, reg, globalRole, name, inv.BirthDate)
		if err != nil {
			return nil, err
		}
		newAccount = true
	}

	member := &team.TeamMember{
		TeamID:       inv.TeamID,
		UserID:       u.ID,
		Role:         inv.Role,
		JerseyNumber: inv.JerseyNumber,
	}
	if err := teams.AddTeamMember(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("you are already a member of this team")
		}
		return nil, apperrors.Internal("failed to join team", err)
	}
	if err := s.seeder.SeedPendingForNewMember(ctx, tx, inv.TeamID, u.ID); err != nil {
		return nil, err
	}

	return &AcceptResult{
		Kind:       KindTeam,
		User:       u,
		TeamIDs:    []uint{inv.TeamID},
		Role:       inv.Role,
		NewAccount: newAccount,
	}, nil
}

func (s *Service) acceptTrainer(ctx context.Context, tx *gorm.DB, inv *TrainerInvite, actor *user.Actor, reg *Registration) (*AcceptResult, error) {
	now := s.now()
	if err := inv.Validate(now); err != nil {
		return nil, err
	}

	repo := NewInviteRepository(tx)
	ok, err := repo.ConsumeTrainerInvite(ctx, inv.ID, now)
	if err != nil {
		return nil, apperrors.Internal("failed to consume invite", err)
	}
	if !ok {
		return nil, s.classifyTrainerInvite(ctx, repo, inv.ID, now)
	}

	users := user.NewUserRepository(tx)
	var placeholder *user.User
	if inv.UserID != nil {
		placeholder, err = users.GetUserByID(ctx, *inv.UserID)
		if err != nil {
			return nil, apperrors.Internal("failed to load placeholder account", err)
		}
		if placeholder != nil && !placeholder.IsPlaceholder {
			placeholder = nil
		}
	}

	var (
		u          *user.User
		newAccount bool
	)
	switch {
	case !reg.empty() && placeholder != nil:
		u, err = s.claim(ctx, users, placeholder, reg)
		newAccount = true
	case !reg.empty():
		u, err = s.register(ctx, users, reg, user.RoleTrainer, reg.Name, nil)
		newAccount = true
	case actor != nil:
		u, err = s.promote(ctx, users, actor.UserID)
	default:
		err = apperrors.Validation("registration data is required")
	}
	if err != nil {
		return nil, err
	}
	if placeholder != nil && placeholder.ID != u.ID {
		// an existing account took the invite; the reserved one is never claimable now
		if err := repo.SetTrainerInviteUser(ctx, inv.ID, u.ID); err != nil {
			return nil, apperrors.Internal("failed to update invite", err)
		}
		if err := users.DeleteUser(ctx, placeholder.ID); err != nil {
			return nil, apperrors.Internal("failed to delete placeholder account", err)
		}
	}

	teams := team.NewTeamRepository(tx)
	joined := make([]uint, 0, len(inv.TeamIDs))
	for _, teamID := range inv.TeamIDs {
		t, err := teams.GetTeamByID(ctx, teamID)
		if err != nil {
			return nil, apperrors.Internal("failed to load team", err)
		}
		if t == nil {
			// team deleted after the invite was issued
			continue
		}
		if err := teams.UpsertTeamMemberRole(ctx, &team.TeamMember{TeamID: teamID, UserID: u.ID, Role: team.MemberRoleTrainer}); err != nil {
			return nil, apperrors.Internal("failed to join team", err)
		}
		if err := s.seeder.SeedPendingForNewMember(ctx, tx, teamID, u.ID); err != nil {
			return nil, err
		}
		joined = append(joined, teamID)
	}

	return &AcceptResult{
		Kind:       KindTrainer,
		User:       u,
		TeamIDs:    joined,
		Role:       team.MemberRoleTrainer,
		NewAccount: newAccount,
	}, nil
}

// claim turns the placeholder into a real account in place. Username and
// e-mail may only collide with the placeholder itself.
func (s *Service) claim(ctx context.Context, users user.UserRepository, placeholder *user.User, reg *Registration) (*user.User, error) {
	if err := checkRegistration(reg); err != nil {
		return nil, err
	}
	if err := s.ensureAvailable(ctx, users, reg, placeholder.ID); err != nil {
		return nil, err
	}
	birthDate, err := parseDate("birth_date", reg.BirthDate)
	if err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(reg.Password)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	placeholder.Username = reg.Username
	placeholder.Email = reg.Email
	placeholder.Password = hash
	placeholder.Role = user.RoleTrainer
	placeholder.IsPlaceholder = false
	if reg.Name != "" {
		placeholder.Name = reg.Name
	}
	if birthDate != nil {
		placeholder.BirthDate = birthDate
	}
	if err := users.UpdateUser(ctx, placeholder); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("username or email already in use")
		}
		return nil, apperrors.Internal("failed to update account", err)
	}
	return placeholder, nil
}

func (s *Service) register(ctx context.Context, users user.UserRepository, reg *Registration, role, name string, fallbackBirthDate *time.Time) (*user.User, error) {
	if err := checkRegistration(reg); err != nil {
		return nil, err
	}
	if err := s.ensureAvailable(ctx, users, reg, 0); err != nil {
		return nil, err
	}
	birthDate, err := parseDate("birth_date", reg.BirthDate)
	if err != nil {
		return nil, err
	}
	if birthDate == nil {
		birthDate = fallbackBirthDate
	}
	hash, err := utils.HashPassword(reg.Password)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	u := &user.User{
		Username:  reg.Username,
		Email:     reg.Email,
		Password:  hash,
		Name:      strings.TrimSpace(name),
		BirthDate: birthDate,
		Role:      role,
	}
	if err := users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("username or email already in use")
		}
		return nil, apperrors.Internal("failed to create account", err)
	}
	return u, nil
}

// promote gives an existing account the trainer role. Admins keep theirs.
func (s *Service) promote(ctx context.Context, users user.UserRepository, userID uint) (*user.User, error) {
	u, err := users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("failed to load user", err)
	}
	if u == nil {
		return nil, apperrors.Unauthorized("user not found")
	}
	if u.Role == user.RolePlayer {
		u.Role = user.RoleTrainer
		if err := users.UpdateUser(ctx, u); err != nil {
			return nil, apperrors.Internal("failed to update account", err)
		}
	}
	return u, nil
}

func (s *Service) ensureAvailable(ctx context.Context, users user.UserRepository, reg *Registration, allowID uint) error {
	byName, err := users.GetUserByUsername(ctx, reg.Username)
	if err != nil {
		return apperrors.Internal("failed to check username", err)
	}
	if byName != nil && byName.ID != allowID {
		return apperrors.Conflict("username already in use")
	}
	byEmail, err := users.GetUserByEmail(ctx, reg.Email)
	if err != nil {
		return apperrors.Internal("failed to check email", err)
	}
	if byEmail != nil && byEmail.ID != allowID {
		return apperrors.Conflict("email already in use")
	}
	return nil
}

// Delete removes an invite for good. An unused trainer invite takes its
// placeholder account with it.
func (s *Service) Delete(ctx context.Context, actor user.Actor, kind string, inviteID uint) error {
	teams := team.NewTeamRepository(s.db)
	switch kind {
	case KindTeam:
		repo := NewInviteRepository(s.db)
		inv, err := repo.GetTeamInviteByID(ctx, inviteID)
		if err != nil {
			return apperrors.Internal("failed to load invite", err)
		}
		if inv == nil {
			return apperrors.NotFound("invite")
		}
		if err := team.RequireTrainer(ctx, teams, actor, inv.TeamID); err != nil {
			return err
		}
		if err := repo.DeleteTeamInvite(ctx, inv.ID); err != nil {
			return apperrors.Internal("failed to delete invite", err)
		}
		return nil

	case KindTrainer:
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			repo := NewInviteRepository(tx)
			inv, err := repo.GetTrainerInviteByID(ctx, inviteID)
			if err != nil {
				return apperrors.Internal("failed to load invite", err)
			}
			if inv == nil {
				return apperrors.NotFound("invite")
			}
			if !actor.IsAdmin() && !s.trainsAny(ctx, teams, actor.UserID, inv.TeamIDs) {
				return apperrors.Forbidden("only admins or trainers of the invited teams can delete this invite")
			}
			if err := repo.DeleteTrainerInvite(ctx, inv.ID); err != nil {
				return apperrors.Internal("failed to delete invite", err)
			}
			if inv.UsedCount > 0 || inv.UserID == nil {
				return nil
			}
			users := user.NewUserRepository(tx)
			placeholder, err := users.GetUserByID(ctx, *inv.UserID)
			if err != nil {
				return apperrors.Internal("failed to load placeholder account", err)
			}
			if placeholder != nil && placeholder.IsPlaceholder {
				if err := users.DeleteUser(ctx, placeholder.ID); err != nil {
					return apperrors.Internal("failed to delete placeholder account", err)
				}
			}
			return nil
		})
	}
	return apperrors.Validation("unknown invite kind")
}

// ListForTeam lists team and trainer invites covering teamID with their state
// and link.
func (s *Service) ListForTeam(ctx context.Context, actor user.Actor, teamID uint, baseURL string) ([]InviteView, error) {
	if err := team.RequireTrainer(ctx, team.NewTeamRepository(s.db), actor, teamID); err != nil {
		return nil, err
	}
	repo := NewInviteRepository(s.db)
	now := s.now()

	teamInvites, err := repo.ListTeamInvites(ctx, teamID)
	if err != nil {
		return nil, apperrors.Internal("failed to list invites", err)
	}
	trainerInvites, err := repo.ListTrainerInvites(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list invites", err)
	}

	views := make([]InviteView, 0, len(teamInvites))
	for i := range trainerInvites {
		tr := &trainerInvites[i]
		if !tr.HasTeam(teamID) {
			continue
		}
		views = append(views, InviteView{Kind: KindTrainer, State: tr.State(now), URL: URL(baseURL, tr.Token), TrainerInvite: tr})
	}
	for i := range teamInvites {
		ti := &teamInvites[i]
		views = append(views, InviteView{Kind: KindTeam, State: ti.State(now), URL: URL(baseURL, ti.Token), TeamInvite: ti})
	}
	return views, nil
}

func (s *Service) trainsAny(ctx context.Context, teams team.TeamRepository, userID uint, teamIDs []uint) bool {
	for _, id := range teamIDs {
		role, err := teams.GetUserTeamRole(ctx, id, userID)
		if err == nil && role == team.MemberRoleTrainer {
			return true
		}
	}
	return false
}

func (s *Service) classifyTeamInvite(ctx context.Context, repo InviteRepository, id uint, now time.Time) error {
	current, err := repo.GetTeamInviteByID(ctx, id)
	if err != nil {
		return apperrors.Internal("failed to reload invite", err)
	}
	if current == nil {
		return apperrors.NotFound("invite")
	}
	if err := current.Validate(now); err != nil {
		return err
	}
	return apperrors.Exhausted("invite has already been used")
}

func (s *Service) classifyTrainerInvite(ctx context.Context, repo InviteRepository, id uint, now time.Time) error {
	current, err := repo.GetTrainerInviteByID(ctx, id)
	if err != nil {
		return apperrors.Internal("failed to reload invite", err)
	}
	if current == nil {
		return apperrors.NotFound("invite")
	}
	if err := current.Validate(now); err != nil {
		return err
	}
	return apperrors.Exhausted("invite has already been used")
}

func (s *Service) expiry(ttlDays *int) (*time.Time, error) {
	if ttlDays == nil {
		return nil, nil
	}
	if *ttlDays < 1 {
		return nil, apperrors.Validation("ttl_days must be at least 1")
	}
	t := s.now().AddDate(0, 0, *ttlDays)
	return &t, nil
}

func newPlaceholder(name string) (*user.User, error) {
	suffix, err := token.RandomHex(6)
	if err != nil {
		return nil, apperrors.Internal("failed to generate placeholder name", err)
	}
	hash, err := utils.UnusablePasswordHash()
	if err != nil {
		return nil, apperrors.Internal("failed to generate placeholder password", err)
	}
	username := "trainer_" + suffix
	return &user.User{
		Username:      username,
		Email:         username + "@" + placeholderEmailDomain,
		Password:      hash,
		Name:          strings.TrimSpace(name),
		Role:          user.RoleTrainer,
		IsPlaceholder: true,
	}, nil
}

func checkRegistration(reg *Registration) error {
	if reg == nil {
		return apperrors.Validation("registration data is required")
	}
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.ToLower(strings.TrimSpace(reg.Email))
	switch {
	case len(reg.Username) < 3:
		return apperrors.Validation("username must be at least 3 characters")
	case !strings.Contains(reg.Email, "@"):
		return apperrors.Validation("a valid email is required")
	case len(reg.Password) < 8:
		return apperrors.Validation("password must be at least 8 characters")
	case strings.HasSuffix(strings.ToLower(reg.Email), "@"+placeholderEmailDomain):
		return apperrors.Validation("a valid email is required")
	}
	return nil
}

func parseDate(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, apperrors.Validation(field + " must be YYYY-MM-DD")
	}
	return &t, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
