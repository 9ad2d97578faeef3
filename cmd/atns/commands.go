package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/and161185/atns-client/internal/config"
	"github.com/and161185/atns-client/internal/guard"
	"github.com/and161185/atns-client/internal/model"
)

type command struct {
	protected bool
	run       func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":               {run: cmdLogin},
	"logout":              {run: cmdLogout},
	"whoami":              {run: cmdWhoami},
	"config":              {run: cmdConfig},
	"register-init":       {run: cmdRegisterInit},
	"register-verify":     {run: cmdRegisterVerify},
	"register-complete":   {run: cmdRegisterComplete},
	"resend-otp":          {run: cmdResendOTP},
	"forgot-password":     {run: cmdForgotPassword},
	"reset-password":      {run: cmdResetPassword},
	"change-password":     {protected: true, run: cmdChangePassword},
	"change-email-init":   {protected: true, run: cmdChangeEmailInit},
	"change-email-verify": {protected: true, run: cmdChangeEmailVerify},

	"me":             {protected: true, run: cmdMe},
	"my-skills":      {protected: true, run: cmdMySkills},
	"profile":        {protected: true, run: cmdProfile},
	"profile-update": {protected: true, run: cmdProfileUpdate},
	"profiles":       {protected: true, run: cmdProfiles},
	"profile-create": {protected: true, run: cmdProfileCreate},
	"follow":         {protected: true, run: cmdFollow},
	"unfollow":       {protected: true, run: cmdUnfollow},
	"following":      {protected: true, run: cmdFollowing},
	"followers":      {protected: true, run: cmdFollowers},
	"status":         {protected: true, run: cmdStatus},

	"events":       {protected: true, run: cmdEvents},
	"event":        {protected: true, run: cmdEvent},
	"my-events":    {protected: true, run: cmdMyEvents},
	"upcoming":     {protected: true, run: cmdUpcoming},
	"event-search": {protected: true, run: cmdEventSearch},
	"event-create": {protected: true, run: cmdEventCreate},
	"event-update": {protected: true, run: cmdEventUpdate},
	"event-delete": {protected: true, run: cmdEventDelete},
	"event-toggle": {protected: true, run: cmdEventToggle},
	"events-by":    {protected: true, run: cmdEventsBy},

	"jobs":          {protected: true, run: cmdJobs},
	"job":           {protected: true, run: cmdJob},
	"my-jobs":       {protected: true, run: cmdMyJobs},
	"job-create":    {protected: true, run: cmdJobCreate},
	"job-delete":    {protected: true, run: cmdJobDelete},
	"job-update":    {protected: true, run: cmdJobUpdate},
	"job-search":    {protected: true, run: cmdJobSearch},
	"job-recommend": {protected: true, run: cmdJobRecommend},
	"skills":        {protected: true, run: cmdSkills},
	"skill-add":     {protected: true, run: cmdSkillAdd},
	"skill":         {protected: true, run: cmdSkill},
	"skill-update":  {protected: true, run: cmdSkillUpdate},

	"recommend-events": {protected: true, run: cmdRecommendEvents},
	"recommend-users":  {protected: true, run: cmdRecommendUsers},
	"dashboard":        {protected: true, run: cmdDashboard},
}

// ---- utils ----

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readAll(p string) ([]byte, error) {
	if p == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(p)
}

func readJSON(p string, v any) error {
	if p == "" {
		return need(false, "need -file")
	}
	b, err := readAll(p)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse %s: %w", p, err)
	}
	return nil
}

func newFlags(name string, a *app) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

// parse reports bad flags as usage errors; -h passes through as flag.ErrHelp.
func parse(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
}

func need(ok bool, msg string) error {
	if !ok {
		return fmt.Errorf("%w: %s", errUsage, msg)
	}
	return nil
}

func idFlag(name string, a *app, args []string) (int64, error) {
	fs := newFlags(name, a)
	id := fs.Int64("id", 0, "id")
	if err := parse(fs, args); err != nil {
		return 0, err
	}
	return *id, need(*id > 0, "need -id")
}

func pageFlags(fs *flag.FlagSet) (*int, *int) {
	return fs.Int("page", 0, "page (0-based)"), fs.Int("size", 20, "page size")
}

// ---- session ----

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login", a)
	email := fs.String("email", "", "email")
	p := fs.String("p", "", "password")
	force := fs.Bool("force", false, "log in even if a live token is stored")
	if err := parse(fs, args); err != nil {
		return err
	}
	if !*force && a.guard.LoginShortcut(time.Now()) {
		fmt.Fprintln(a.out, "already logged in")
		return nil
	}
	if err := need(*email != "" && *p != "", "need -email and -p"); err != nil {
		return err
	}
	if _, err := a.api.Login(ctx, *email, *p); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ok")
	return nil
}

func cmdLogout(_ context.Context, a *app, _ []string) error {
	a.api.Logout()
	fmt.Fprintln(a.out, "ok")
	return nil
}

type whoami struct {
	ProfileID       *int64     `json:"profileId"`
	Username        *string    `json:"username"`
	Roles           []string   `json:"roles"`
	IsAuthenticated bool       `json:"isAuthenticated"`
	HasToken        bool       `json:"hasToken"`
	TokenExpiresAt  *time.Time `json:"tokenExpiresAt,omitempty"`
	TokenExpired    bool       `json:"tokenExpired"`
}

func cmdWhoami(_ context.Context, a *app, _ []string) error {
	s := a.store.Get()
	w := whoami{
		ProfileID:       s.ProfileID,
		Username:        s.Username,
		Roles:           s.Roles,
		IsAuthenticated: s.IsAuthenticated,
	}
	if tok := s.BearerToken(); tok != "" {
		w.HasToken = true
		w.TokenExpired = guard.TokenExpired(tok, time.Now())
		if info, err := guard.Inspect(tok); err == nil && !info.ExpiresAt.IsZero() {
			exp := info.ExpiresAt.UTC()
			w.TokenExpiresAt = &exp
		}
	}
	return printJSON(a.out, w)
}

func cmdConfig(_ context.Context, a *app, args []string) error {
	fs := newFlags("config", a)
	write := fs.Bool("write", false, "save the effective config to the config file")
	if err := parse(fs, args); err != nil {
		return err
	}
	if !*write {
		return printJSON(a.out, a.cfg.Redacted())
	}
	path := a.cfgPath
	if path == "" {
		path = config.DefaultPath()
	}
	if err := a.cfg.Save(path); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "wrote", path)
	return nil
}

func emailOnly(name string, a *app, args []string) (string, error) {
	fs := newFlags(name, a)
	email := fs.String("email", "", "email")
	if err := parse(fs, args); err != nil {
		return "", err
	}
	return *email, need(*email != "", "need -email")
}

func cmdRegisterInit(ctx context.Context, a *app, args []string) error {
	email, err := emailOnly("register-init", a, args)
	if err != nil {
		return err
	}
	ack, err := a.api.RegisterInit(ctx, email)
	if err != nil {
		return err
	}
	return printJSON(a.out, ack)
}

func cmdResendOTP(ctx context.Context, a *app, args []string) error {
	email, err := emailOnly("resend-otp", a, args)
	if err != nil {
		return err
	}
	ack, err := a.api.ResendOTP(ctx, email)
	if err != nil {
		return err
	}
	return printJSON(a.out, ack)
}

func cmdForgotPassword(ctx context.Context, a *app, args []string) error {
	email, err := emailOnly("forgot-password", a, args)
	if err != nil {
		return err
	}
	ack, err := a.api.ForgotPasswordInit(ctx, email)
	if err != nil {
		return err
	}
	return printJSON(a.out, ack)
}

func cmdRegisterVerify(ctx context.Context, a *app, args []string) error {
	fs := newFlags("register-verify", a)
	email := fs.String("email", "", "email")
	code := fs.String("code", "", "OTP")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := need(*email != "" && *code != "", "need -email and -code"); err != nil {
		return err
	}
	resp, err := a.api.VerifyEmail(ctx, *email, *code)
	if err != nil {
		return err
	}
	return printJSON(a.out, resp)
}

func cmdRegisterComplete(ctx context.Context, a *app, args []string) error {
	fs := newFlags("register-complete", a)
	email := fs.String("email", "", "email")
	u := fs.String("u", "", "username")
	p := fs.String("p", "", "password")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := need(*email != "" && *u != "" && *p != "", "need -email -u -p"); err != nil {
		return err
	}
	resp, err := a.api.RegisterComplete(ctx, *email, *u, *p)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, resp.Message)
	return nil
}

func cmdResetPassword(ctx context.Context, a *app, args []string) error {
	fs := newFlags("reset-password", a)
	email := fs.String("email", "", "email")
	code := fs.String("code", "", "OTP")
	p := fs.String("p", "", "new password")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := need(*email != "" && *code != "" && *p != "", "need -email -code -p"); err != nil {
		return err
	}
	ack, err := a.api.ForgotPasswordVerify(ctx, *email, *code, *p)
	if err != nil {
		return err
	}
	return printJSON(a.out, ack)
}

func cmdChangePassword(ctx context.Context, a *app, args []string) error {
	fs := newFlags("change-password", a)
	oldPw := fs.String("old", "", "current password")
	newPw := fs.String("new", "", "new password")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := need(*oldPw != "" && *newPw != "", "need -old and -new"); err != nil {
		return err
	}
	ack, err := a.api.ChangePassword(ctx, *oldPw, *newPw)
	if err != nil {
		return err
	}
	return printJSON(a.out, ack)
}

func cmdChangeEmailInit(ctx context.Context, a *app, args []string) error {
	email, err := emailOnly("change-email-init", a, args)
	if err != nil {
		return err
	}
	ack, err := a.api.ChangeEmailInit(ctx, email)
	if err != nil {
		return err
	}
	return printJSON(a.out, ack)
}

func cmdChangeEmailVerify(ctx context.Context, a *app, args []string) error {
	fs := newFlags("change-email-verify", a)
	email := fs.String("email", "", "new email")
	code := fs.String("code", "", "OTP")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := need(*email != "" && *code != "", "need -email and -code"); err != nil {
		return err
	}
	ack, err := a.api.ChangeEmailVerify(ctx, *email, *code)
	if err != nil {
		return err
	}
	return printJSON(a.out, ack)
}

// ---- profiles and network ----

func cmdProfiles(ctx context.Context, a *app, _ []string) error {
	ps, err := a.api.Profiles(ctx)
	if err != nil {
		return err
	}
	return printJSON(a.out, ps)
}

func cmdProfileCreate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("profile-create", a)
	file := fs.String("file", "", "profile JSON ('-'=stdin)")
	if err := parse(fs, args); err != nil {
		return err
	}
	var p model.Profile
	if err := readJSON(*file, &p); err != nil {
		return err
	}
	out, err := a.api.CreateProfile(ctx, p)
	if err != nil {
		return err
	}
	return printJSON(a.out, out)
}

func cmdMe(ctx context.Context, a *app, _ []string) error {
	p, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	return printJSON(a.out, p)
}

func cmdMySkills(ctx context.Context, a *app, _ []string) error {
	s, err := a.api.MySkills(ctx)
	if err != nil {
		return err
	}
	return printJSON(a.out, s)
}

func cmdProfile(ctx context.Context, a *app, args []string) error {
	id, err := idFlag("profile", a, args)
	if err != nil {
		return err
	}
	p, err := a.api.Profile(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(a.out, p)
}

func cmdProfileUpdate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("profile-update", a)
	file := fs.String("file", "", "profile JSON ('-'=stdin)")
	if err := parse(fs, args); err != nil {
		return err
	}
	var p model.Profile
	if err := readJSON(*file, &p); err != nil {
		return err
	}
	s := a.store.Get()
	if s.ProfileID == nil {
		return errors.New("no profile id in session")
	}
	out, err := a.api.UpdateProfile(ctx, *s.ProfileID, p)
	if err != nil {
		return err
	}
	if out.FirstName != "" {
		a.store.UpdateUsername(out.FirstName)
	}
	return printJSON(a.out, out)
}

func targetFlag(name string, a *app, args []string) (int64, error) {
	fs := newFlags(name, a)
	target := fs.Int64("target", 0, "target profile id")
	if err := parse(fs, args); err != nil {
		return 0, err
	}
	return *target, need(*target > 0, "need -target")
}

func cmdFollow(ctx context.Context, a *app, args []string) error {
	target, err := targetFlag("follow", a, args)
	if err != nil {
		return err
	}
	if err := a.api.Follow(ctx, target); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ok")
	return nil
}

func cmdUnfollow(ctx context.Context, a *app, args []string) error {
	target, err := targetFlag("unfollow", a, args)
	if err != nil {
		return err
	}
	if err := a.api.Unfollow(ctx, target); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ok")
	return nil
}

func cmdStatus(ctx context.Context, a *app, args []string) error {
	target, err := targetFlag("status", a, args)
	if err != nil {
		return err
	}
	st, err := a.api.ConnectionStatus(ctx, target)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, st)
	return nil
}

func cmdFollowing(ctx context.Context, a *app, _ []string) error {
	ids, err := a.api.FollowingIDs(ctx)
	if err != nil {
		return err
	}
	return printJSON(a.out, ids)
}

func cmdFollowers(ctx context.Context, a *app, args []string) error {
	fs := newFlags("followers", a)
	page, size := pageFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	p, err := a.api.Followers(ctx, *page, *size)
	if err != nil {
		return err
	}
	return printJSON(a.out, p)
}

// ---- events ----

func cmdEvents(ctx context.Context, a *app, _ []string) error {
	evs, err := a.api.Events(ctx)
	if err != nil {
		return err
	}
	return printJSON(a.out, evs)
}

func cmdEvent(ctx context.Context, a *app, args []string) error {
	id, err := idFlag("event", a, args)
	if err != nil {
		return err
	}
	ev, err := a.api.Event(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(a.out, ev)
}

func cmdMyEvents(ctx context.Context, a *app, args []string) error {
	fs := newFlags("my-events", a)
	page, size := pageFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	p, err := a.api.MyEvents(ctx, *page, *size)
	if err != nil {
		return err
	}
	return printJSON(a.out, p)
}

func cmdUpcoming(ctx context.Context, a *app, args []string) error {
	fs := newFlags("upcoming", a)
	page, size := pageFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	p, err := a.api.UpcomingEvents(ctx, *page, *size)
	if err != nil {
		return err
	}
	return printJSON(a.out, p)
}

func cmdEventSearch(ctx context.Context, a *app, args []string) error {
	fs := newFlags("event-search", a)
	q := fs.String("q", "", "query")
	page, size := pageFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := need(*q != "", "need -q"); err != nil {
		return err
	}
	p, err := a.api.SearchEvents(ctx, *q, *page, *size)
	if err != nil {
		return err
	}
	return printJSON(a.out, p)
}

func cmdEventCreate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("event-create", a)
	file := fs.String("file", "", "event JSON ('-'=stdin)")
	if err := parse(fs, args); err != nil {
		return err
	}
	var ev model.Event
	if err := readJSON(*file, &ev); err != nil {
		return err
	}
	out, err := a.api.CreateEvent(ctx, ev)
	if err != nil {
		return err
	}
	return printJSON(a.out, out)
}

func cmdEventUpdate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("event-update", a)
	id := fs.Int64("id", 0, "event id")
	file := fs.String("file", "", "event JSON ('-'=stdin)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := need(*id > 0, "need -id"); err != nil {
		return err
	}
	var ev model.Event
	if err := readJSON(*file, &ev); err != nil {
		return err
	}
	out, err := a.api.UpdateEvent(ctx, *id, ev)
	if err != nil {
		return err
	}
	return printJSON(a.out, out)
}

func cmdEventDelete(ctx context.Context, a *app, args []string) error {
	id, err := idFlag("event-delete", a, args)
	if err != nil {
		return err
	}
	if err := a.api.DeleteEvent(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ok")
	return nil
}

func cmdEventToggle(ctx context.Context, a *app, args []string) error {
	id, err := idFlag("event-toggle", a, args)
	if err != nil {
		return err
	}
	ev, err := a.api.ToggleEventStatus(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(a.out, ev)
}

func cmdEventsBy(ctx context.Context, a *app, args []string) error {
	fs := newFlags("events-by", a)
	org := fs.Int64("organizer", 0, "organizer profile id")
	page, size := pageFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := need(*org > 0, "need -organizer"); err != nil {
		return err
	}
	p, err := a.api.EventsByOrganizer(ctx, *org, *page, *size)
	if err != nil {
		return err
	}
	return printJSON(a.out, p)
}

// ---- jobs and skills ----

func cmdJobs(ctx context.Context, a *app, args []string) error {
	fs := newFlags("jobs", a)
	page, size := pageFlags(fs)
	active := fs.Bool("active", false, "only active postings")
	company := fs.String("company", "", "only this company")
	location := fs.String("location", "", "only this location")
	if err := parse(fs, args); err != nil {
		return err
	}
	var (
		p   model.Page[model.Job]
		err error
	)
	switch {
	case *company != "":
		p, err = a.api.JobsByCompany(ctx, *company, *page, *size)
	case *location != "":
		p, err = a.api.JobsByLocation(ctx, *location, *page, *size)
	case *active:
		p, err = a.api.ActiveJobs(ctx, *page, *size)
	default:
		p, err = a.api.Jobs(ctx, *page, *size)
	}
	if err != nil {
		return err
	}
	return printJSON(a.out, p)
}

func cmdJob(ctx context.Context, a *app, args []string) error {
	id, err := idFlag("job", a, args)
	if err != nil {
		return err
	}
	j, err := a.api.Job(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(a.out, j)
}

func cmdMyJobs(ctx context.Context, a *app, args []string) error {
	fs := newFlags("my-jobs", a)
	page, size := pageFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	p, err := a.api.MyJobs(ctx, *page, *size)
	if err != nil {
		return err
	}
	return printJSON(a.out, p)
}

func cmdJobCreate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("job-create", a)
	file := fs.String("file", "", "job JSON ('-'=stdin)")
	if err := parse(fs, args); err != nil {
		return err
	}
	var j model.JobRequest
	if err := readJSON(*file, &j); err != nil {
		return err
	}
	out, err := a.api.CreateJob(ctx, j)
	if err != nil {
		return err
	}
	return printJSON(a.out, out)
}

func cmdJobDelete(ctx context.Context, a *app, args []string) error {
	id, err := idFlag("job-delete", a, args)
	if err != nil {
		return err
	}
	if err := a.api.DeleteJob(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "ok")
	return nil
}

func cmdJobUpdate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("job-update", a)
	id := fs.Int64("id", 0, "job id")
	file := fs.String("file", "", "partial job JSON ('-'=stdin)")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := need(*id > 0, "need -id"); err != nil {
		return err
	}
	var u model.JobUpdate
	if err := readJSON(*file, &u); err != nil {
		return err
	}
	out, err := a.api.UpdateJob(ctx, *id, u)
	if err != nil {
		return err
	}
	return printJSON(a.out, out)
}

func cmdJobSearch(ctx context.Context, a *app, args []string) error {
	fs := newFlags("job-search", a)
	title := fs.String("title", "", "title contains")
	company := fs.String("company", "", "company")
	location := fs.String("location", "", "location")
	skills := fs.String("skills", "", "comma-separated skills")
	page, size := pageFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	p, err := a.api.SearchJobs(ctx, model.JobSearch{
		Title:    *title,
		Company:  *company,
		Location: *location,
		Skills:   splitList(*skills),
		Page:     *page,
		Size:     *size,
	})
	if err != nil {
		return err
	}
	return printJSON(a.out, p)
}

func limitFlag(name string, a *app, args []string) (int, error) {
	fs := newFlags(name, a)
	limit := fs.Int("limit", 10, "max results")
	if err := parse(fs, args); err != nil {
		return 0, err
	}
	return *limit, nil
}

func cmdJobRecommend(ctx context.Context, a *app, args []string) error {
	limit, err := limitFlag("job-recommend", a, args)
	if err != nil {
		return err
	}
	r, err := a.api.JobRecommendations(ctx, limit)
	if err != nil {
		return err
	}
	return printJSON(a.out, r)
}

func cmdSkills(ctx context.Context, a *app, _ []string) error {
	s, err := a.api.Skills(ctx)
	if err != nil {
		return err
	}
	return printJSON(a.out, s)
}

func cmdSkillAdd(ctx context.Context, a *app, args []string) error {
	fs := newFlags("skill-add", a)
	name := fs.String("name", "", "skill name")
	desc := fs.String("desc", "", "description")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := need(*name != "", "need -name"); err != nil {
		return err
	}
	p, err := a.api.CreateSkill(ctx, model.Skill{Name: *name, Description: *desc})
	if err != nil {
		return err
	}
	return printJSON(a.out, p)
}

func cmdSkill(ctx context.Context, a *app, args []string) error {
	id, err := idFlag("skill", a, args)
	if err != nil {
		return err
	}
	sk, err := a.api.Skill(ctx, id)
	if err != nil {
		return err
	}
	return printJSON(a.out, sk)
}

func cmdSkillUpdate(ctx context.Context, a *app, args []string) error {
	fs := newFlags("skill-update", a)
	id := fs.Int64("id", 0, "skill id")
	name := fs.String("name", "", "skill name")
	desc := fs.String("desc", "", "description")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := need(*id > 0 && *name != "", "need -id and -name"); err != nil {
		return err
	}
	sk, err := a.api.UpdateSkill(ctx, *id, model.Skill{Name: *name, Description: *desc})
	if err != nil {
		return err
	}
	return printJSON(a.out, sk)
}

// ---- recommendations ----

func cmdRecommendEvents(ctx context.Context, a *app, args []string) error {
	limit, err := limitFlag("recommend-events", a, args)
	if err != nil {
		return err
	}
	r, err := a.api.RecommendedEvents(ctx, limit)
	if err != nil {
		return err
	}
	return printJSON(a.out, r)
}

func cmdRecommendUsers(ctx context.Context, a *app, args []string) error {
	limit, err := limitFlag("recommend-users", a, args)
	if err != nil {
		return err
	}
	r, err := a.api.RecommendedUsers(ctx, limit)
	if err != nil {
		return err
	}
	return printJSON(a.out, r)
}

func cmdDashboard(ctx context.Context, a *app, args []string) error {
	limit, err := limitFlag("dashboard", a, args)
	if err != nil {
		return err
	}
	d, err := a.api.Dashboard(ctx, limit)
	if err != nil {
		return err
	}
	return printJSON(a.out, d)
}
