package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pageforge/pkg/brief"
	"pageforge/pkg/deploy"
	"pageforge/pkg/envelope"
	"pageforge/pkg/generate"
	"pageforge/pkg/research"
	"pageforge/pkg/settings"
	"pageforge/pkg/sitegen"
	"pageforge/pkg/workspace"
)

// errDiagLen bounds the error text shown to users and stored on sessions.
const errDiagLen = 200

// Stage dependencies. The concrete types in brief, research, generate,
// sitegen and deploy satisfy these; tests substitute fakes.
type (
	Extractor interface {
		Extract(ctx context.Context, briefText string) (*brief.BusinessRecord, error)
	}
	Researcher interface {
		Research(ctx context.Context, subject research.Subject) *research.Bundle
	}
	DocWriter interface {
		Documents(ctx context.Context, rec *brief.BusinessRecord, bundle *research.Bundle) (*generate.Documents, error)
	}
	SiteBuilder interface {
		Generate(ctx context.Context, businessInfo, plan, designSystem string) (*sitegen.Output, error)
	}
	DeployVerifier interface {
		WaitForDeployment(ctx context.Context, url string) deploy.CheckResult
	}
)

// Controller runs the pipeline end to end for each user brief.
type Controller struct {
	extractor  Extractor
	researcher Researcher
	writer     DocWriter
	builder    SiteBuilder
	deployer   deploy.Deployer
	verifier   DeployVerifier
	notifier   Notifier
	store      *Store
	limits     settings.Limits
	runsDir    string
	log        *zap.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier sets the status sink. Defaults to NopNotifier.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithVerifier sets the post-deploy checker. Nil skips verification.
func WithVerifier(v DeployVerifier) Option {
	return func(c *Controller) { c.verifier = v }
}

func NewController(ex Extractor, re Researcher, wr DocWriter, sb SiteBuilder, dep deploy.Deployer, limits settings.Limits, runsDir string, log *zap.Logger, opts ...Option) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{
		extractor:  ex,
		researcher: re,
		writer:     wr,
		builder:    sb,
		deployer:   dep,
		notifier:   NopNotifier{},
		store:      NewStore(),
		limits:     limits,
		runsDir:    runsDir,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store exposes the session store, mainly for status queries.
func (c *Controller) Store() *Store { return c.store }

// Run executes the full pipeline for one brief. A second Run for the
// same user while one is in flight cancels the first; the abandoned
// run's results are discarded. The session is returned in all cases so
// callers can inspect artifacts even after a failure.
func (c *Controller) Run(ctx context.Context, user, briefText string) (*Session, error) {
	sess, runCtx := c.store.Begin(ctx, user)
	defer sess.cancel()
	started := time.Now()

	ws, err := workspace.New(c.runsDir)
	if err != nil {
		return sess, c.fail(runCtx, sess, fmt.Errorf("create run directory: %w", err))
	}
	c.log.Info("run started",
		zap.String("user", user),
		zap.String("session", sess.ID),
		zap.String("run_id", ws.RunID))

	var envelopes []*envelope.Envelope

	// Extract.
	if !c.enter(runCtx, sess, StageExtracting) {
		return sess, ErrSuperseded
	}
	stageStart := time.Now()
	rec, err := c.extractor.Extract(runCtx, briefText)
	if err != nil {
		envelopes = append(envelopes, stageEnv(StageExtracting, stageStart).Failure(envelope.CodeProviderUnavailable, truncate(err.Error(), errDiagLen)).Build())
		c.writeReport(ws, sess, envelopes)
		return sess, c.fail(runCtx, sess, err)
	}
	sess.Record = rec
	if rec.Name == "" {
		// Partial extraction is non-fatal; naming falls back downstream.
		envelopes = append(envelopes, stageEnv(StageExtracting, stageStart).Degraded(envelope.CodeExtractionIncomplete, "business name not identified; proceeding with partial record").Build())
		c.log.Warn("extraction incomplete", zap.String("user", user))
	} else {
		envelopes = append(envelopes, stageEnv(StageExtracting, stageStart).Success().Build())
	}

	// Research. Degrades to an empty bundle, never fails the run.
	if !c.enter(runCtx, sess, StageResearching) {
		return sess, ErrSuperseded
	}
	stageStart = time.Now()
	bundle := c.researcher.Research(runCtx, research.Subject{
		Name:     rec.Name,
		Website:  rec.Website,
		Industry: rec.Industry,
		Location: rec.Location,
	})
	sess.Research = bundle
	if bundle == nil || len(bundle.Sources) == 0 {
		envelopes = append(envelopes, stageEnv(StageResearching, stageStart).Degraded(envelope.CodeResearchDegraded, "no research sources reachable").Build())
	} else {
		envelopes = append(envelopes, stageEnv(StageResearching, stageStart).Success().Build())
	}

	// Plan and design system, then build instructions.
	if !c.enter(runCtx, sess, StagePlanning) {
		return sess, ErrSuperseded
	}
	stageStart = time.Now()
	docs, err := c.writer.Documents(runCtx, rec, bundle)
	if err != nil {
		envelopes = append(envelopes, stageEnv(StagePlanning, stageStart).Failure(envelope.CodeProviderUnavailable, truncate(err.Error(), errDiagLen)).Build())
		c.writeReport(ws, sess, envelopes)
		return sess, c.fail(runCtx, sess, err)
	}
	sess.Docs = docs
	if !c.enter(runCtx, sess, StageDesigningSystem) {
		return sess, ErrSuperseded
	}
	ws.WriteArtifact(workspace.FilePlan, docs.Plan.Content)
	ws.WriteArtifact(workspace.FileDesignSystem, docs.DesignSystem.Content)
	ws.WriteArtifact(workspace.FileBuildPrompt, docs.BuildInstructions.Content)
	envelopes = append(envelopes, stageEnv(StagePlanning, stageStart).Success().WithOutputRef(ws.ArtifactPath(workspace.FilePlan)).Build())
	envelopes = append(envelopes, stageEnv(StageDesigningSystem, stageStart).Success().WithOutputRef(ws.ArtifactPath(workspace.FileDesignSystem)).Build())
	c.sendDocs(runCtx, user, docs)

	// Generate code.
	if !c.enter(runCtx, sess, StageGeneratingCode) {
		return sess, ErrSuperseded
	}
	stageStart = time.Now()
	site, err := c.builder.Generate(runCtx, rec.FormatForPrompt(), docs.Plan.Content, docs.DesignSystem.Content)
	if err != nil {
		envelopes = append(envelopes, stageEnv(StageGeneratingCode, stageStart).Failure(envelope.CodeProviderUnavailable, truncate(err.Error(), errDiagLen)).Build())
		c.writeReport(ws, sess, envelopes)
		return sess, c.fail(runCtx, sess, err)
	}
	sess.Site = site
	codeFile := workspace.FileStaticSite
	if c.deployer.Name() == "sandbox" {
		codeFile = workspace.FileComponent
	}
	ws.WriteArtifact(codeFile, site.Code)
	eb := stageEnv(StageGeneratingCode, stageStart).WithOutputRef(ws.ArtifactPath(codeFile)).WithSizes(0, len(site.Code))
	if site.Valid {
		eb.Success()
	} else {
		// The best-effort output still ships; the report records the gap.
		eb.Degraded(envelope.CodeValidationFailed, truncate(site.Issue, errDiagLen))
	}
	envelopes = append(envelopes, eb.Build())

	// Deploy.
	if !c.enter(runCtx, sess, StageDeploying) {
		return sess, ErrSuperseded
	}
	stageStart = time.Now()
	result, err := c.doDeploy(runCtx, sess)
	if err != nil {
		envelopes = append(envelopes, stageEnv(StageDeploying, stageStart).Failure(envelope.CodeDeployFailed, truncate(err.Error(), errDiagLen)).Build())
		c.writeReport(ws, sess, envelopes)
		return sess, c.fail(runCtx, sess, err)
	}
	sess.Deploy = result
	envelopes = append(envelopes, stageEnv(StageDeploying, stageStart).Success().WithResult("url", result.URL).Build())

	if !c.enter(runCtx, sess, StageComplete) {
		return sess, ErrSuperseded
	}
	c.writeReport(ws, sess, envelopes)
	c.notify(runCtx, user, fmt.Sprintf("%s\n%s", Label(StageComplete), result.URL))
	c.log.Info("run complete",
		zap.String("user", user),
		zap.String("url", result.URL),
		zap.Duration("elapsed", time.Since(started)))
	return sess, nil
}

// ErrSuperseded is returned when a newer run for the same user replaced
// this one mid-flight.
var ErrSuperseded = errors.New("run superseded by a newer request")

// RetryDeploy redeploys the retained site from the user's last session
// without regenerating anything. It requires a session that reached code
// generation.
func (c *Controller) RetryDeploy(ctx context.Context, user string) (*Session, error) {
	sess := c.store.Get(user)
	if sess == nil || sess.Site == nil || sess.Site.Code == "" {
		return nil, errors.New("nothing to deploy; run a brief first")
	}
	if !c.store.advance(sess, StageDeploying) {
		return sess, ErrSuperseded
	}
	c.notify(ctx, user, Label(StageDeploying))
	result, err := c.doDeploy(ctx, sess)
	if err != nil {
		return sess, c.fail(ctx, sess, err)
	}
	sess.Deploy = result
	if !c.store.advance(sess, StageComplete) {
		return sess, ErrSuperseded
	}
	c.notify(ctx, user, fmt.Sprintf("%s\n%s", Label(StageComplete), result.URL))
	return sess, nil
}

func (c *Controller) doDeploy(ctx context.Context, sess *Session) (*deploy.Result, error) {
	title := sess.Record.Name
	if title == "" {
		title = "Landing Page"
	}
	site := deploy.Site{
		ProjectName: deploy.ProjectName(sess.Record.Name, time.Now()),
		Title:       title,
		HTML:        sess.Site.Code,
	}
	if c.deployer.Name() == "sandbox" {
		site.Files = deploy.BuildNextProject(sess.Site.Code, title)
	}
	result, err := c.deployer.Deploy(ctx, site)
	if err != nil {
		return nil, err
	}
	if c.verifier != nil {
		check := c.verifier.WaitForDeployment(ctx, result.URL)
		if !check.OK() {
			c.log.Warn("deployed site not yet serving content",
				zap.String("url", result.URL),
				zap.Bool("loads", check.Loads))
		}
	}
	return result, nil
}

// enter advances the session and announces the stage. False means a
// newer run took over and the caller must unwind without touching the
// session further.
func (c *Controller) enter(ctx context.Context, sess *Session, stage Stage) bool {
	if ctx.Err() != nil {
		c.markFailed(sess, ctx.Err())
		return false
	}
	if !c.store.advance(sess, stage) {
		return false
	}
	if stage != StageComplete {
		c.notify(ctx, sess.User, Label(stage))
	}
	return true
}

func (c *Controller) fail(ctx context.Context, sess *Session, err error) error {
	if !c.store.current(sess) {
		// A newer run owns the session; unwind without noise.
		return ErrSuperseded
	}
	stage := sess.Stage
	c.markFailed(sess, err)
	c.notify(ctx, sess.User, fmt.Sprintf("%s during %s: %s", Label(StageFailed), stage, truncate(err.Error(), errDiagLen)))
	c.log.Error("run failed",
		zap.String("user", sess.User),
		zap.String("stage", string(stage)),
		zap.Error(err))
	return err
}

func (c *Controller) markFailed(sess *Session, err error) {
	if c.store.advance(sess, StageFailed) {
		sess.Err = truncate(err.Error(), errDiagLen)
	}
}

func (c *Controller) notify(ctx context.Context, user, text string) {
	if err := c.notifier.Notify(ctx, user, text); err != nil {
		c.log.Warn("notify failed", zap.String("user", user), zap.Error(err))
	}
}

// sendDocs delivers the plan and design system, chunked or attached per
// the configured limits. Delivery problems never fail the run.
func (c *Controller) sendDocs(ctx context.Context, user string, docs *generate.Documents) {
	for _, a := range []struct {
		name    string
		content string
	}{
		{workspace.FilePlan, docs.Plan.Content},
		{workspace.FileDesignSystem, docs.DesignSystem.Content},
	} {
		if err := deliver(ctx, c.notifier, user, a.name, a.content, c.limits.ChunkSize, c.limits.AttachmentThreshold); err != nil {
			c.log.Warn("document delivery failed", zap.String("name", a.name), zap.Error(err))
		}
	}
}

func (c *Controller) writeReport(ws *workspace.Workspace, sess *Session, envelopes []*envelope.Envelope) {
	if _, err := ws.WriteArtifact(workspace.FileReport, BuildReport(ws.RunID, sess, envelopes)); err != nil {
		c.log.Warn("write report failed", zap.Error(err))
	}
}

func stageEnv(stage Stage, started time.Time) *envelope.Builder {
	return envelope.New().WithStage(string(stage)).WithDuration(time.Since(started).Milliseconds())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
