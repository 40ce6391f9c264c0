package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"media_watch/internal/config"
	"media_watch/internal/corpus"
	"media_watch/internal/digest"
	"media_watch/internal/domain"
	"media_watch/internal/export"
	"media_watch/internal/freshness"
	"media_watch/internal/matcher"
	"media_watch/internal/service/mocks"
	"media_watch/internal/snapshot"
)

type DashboardTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	refresher *mocks.MockRefresher
	generator *mocks.MockGenerator
	saver     *mocks.MockSaver
	corpus    *mocks.MockCorpus

	tracker   *freshness.Tracker
	snapshots *snapshot.Store
	sink      *export.Sink
	cfg       DashboardConfig
	logger    *slog.Logger
	now       time.Time
}

func (s *DashboardTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.refresher = mocks.NewMockRefresher(s.ctrl)
	s.generator = mocks.NewMockGenerator(s.ctrl)
	s.saver = mocks.NewMockSaver(s.ctrl)
	s.corpus = mocks.NewMockCorpus(s.ctrl)

	s.now = time.Date(2026, 1, 5, 10, 30, 0, 0, time.UTC)
	s.tracker = freshness.NewTracker([]string{"news", "stocks"})
	s.snapshots = snapshot.NewStore([]string{"news", "stocks"})
	s.sink = export.NewSink("Satellifacts").WithClock(func() time.Time { return s.now })
	s.cfg = DashboardConfig{
		Profiles:        config.DefaultProfiles(),
		DefaultLanguage: "fr",
		Newsletters:     true,
		LinkedIn:        true,
	}
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func (s *DashboardTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestDashboardTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardTestSuite))
}

func (s *DashboardTestSuite) dashboard(gen Generator, c Corpus, saver Saver) *Dashboard {
	return NewDashboard(s.cfg, s.tracker, s.snapshots, c, s.refresher, gen, s.sink, saver, s.logger)
}

func (s *DashboardTestSuite) TestSearch_UsesGenerator() {
	ctx := context.Background()
	want := &domain.Digest{ProfileID: "cinema", Items: []domain.ContentItem{{ID: "1"}}}
	s.generator.EXPECT().Generate(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, p domain.Profile) (*domain.Digest, error) {
			s.Equal("cinema", p.ID)
			s.Equal("Cinéma", p.Name)
			return want, nil
		},
	)

	got, err := s.dashboard(s.generator, s.corpus, nil).Search(ctx, "cinema")

	s.Require().NoError(err)
	s.Same(want, got)
}

func (s *DashboardTestSuite) TestSearch_ModuleDisabled() {
	s.cfg.Newsletters = false

	_, err := s.dashboard(s.generator, s.corpus, nil).Search(context.Background(), "cinema")

	s.True(errors.Is(err, domain.ErrModuleDisabled))
}

func (s *DashboardTestSuite) TestSearch_UnknownProfile() {
	_, err := s.dashboard(s.generator, s.corpus, nil).Search(context.Background(), "astronaute")

	s.True(errors.Is(err, domain.ErrUnknownProfile))
}

func (s *DashboardTestSuite) TestSearch_GeneratorErrorIsWrapped() {
	ctx := context.Background()
	s.generator.EXPECT().Generate(ctx, gomock.Any()).Return(nil, domain.ErrNoContent)

	_, err := s.dashboard(s.generator, s.corpus, nil).Search(ctx, "financier")

	s.True(errors.Is(err, domain.ErrNoContent))
}

func (s *DashboardTestSuite) TestSearch_LocalEmptyCorpusIsNoContent() {
	c := corpus.New("fr")
	local := digest.NewLocal(c, digest.NewAssembler("Satellifacts"), "fr", matcher.Options{MinResults: 3, MaxResults: 8})

	_, err := s.dashboard(local, c, nil).Search(context.Background(), "financier")

	s.True(errors.Is(err, domain.ErrNoContent))
}

func (s *DashboardTestSuite) TestSearch_LocalWidensToOtherLanguages() {
	c := corpus.New("fr")
	c.Upsert([]domain.ContentItem{
		{ID: "1", Link: "https://a", Title: "Netflix stock rally", Language: "en", PublishedAt: s.now.Add(-1 * time.Hour)},
		{ID: "2", Link: "https://b", Title: "Paramount merger", Language: "en", PublishedAt: s.now.Add(-2 * time.Hour)},
		{ID: "3", Link: "https://c", Title: "Box office", Language: "en", PublishedAt: s.now.Add(-3 * time.Hour)},
		{ID: "4", Link: "https://d", Title: "Audiences TF1", Language: "fr", PublishedAt: s.now.Add(-4 * time.Hour)},
	})
	local := digest.NewLocal(c, digest.NewAssembler("Satellifacts"), "fr", matcher.Options{MinResults: 3, MaxResults: 8}).
		WithClock(func() time.Time { return s.now })

	d, err := s.dashboard(local, c, nil).Search(context.Background(), "financier")

	s.Require().NoError(err)
	s.Equal("SATELLIFACTS | FINANCIER", d.Title)
	s.Len(d.Items, 4)
	s.Equal(s.now, d.GeneratedAt)
}

func (s *DashboardTestSuite) TestLocalAndRemoteAreInterchangeable() {
	ctx := context.Background()
	remote := &fixedRemote{digest: &domain.Digest{Title: "REMOTE", Items: []domain.ContentItem{{ID: "r"}}}}

	d, err := s.dashboard(digest.NewRemote(remote), s.corpus, nil).Search(ctx, "diffuseur")

	s.Require().NoError(err)
	s.Equal("REMOTE", d.Title)
	s.Equal("diffuseur", d.ProfileID)
}

type fixedRemote struct {
	digest *domain.Digest
}

func (f *fixedRemote) GenerateDigest(context.Context, string) (*domain.Digest, error) {
	d := *f.digest
	return &d, nil
}

func (s *DashboardTestSuite) TestRequestRefresh() {
	ctx := context.Background()
	stats := &domain.SyncStats{SourceID: "news", Fetched: 3}
	s.refresher.EXPECT().RefreshNow(ctx, "news").Return(stats, nil)

	got, err := s.dashboard(s.generator, s.corpus, nil).RequestRefresh(ctx, "news")

	s.Require().NoError(err)
	s.Same(stats, got)
}

func (s *DashboardTestSuite) TestRequestRefresh_UnknownSource() {
	_, err := s.dashboard(s.generator, s.corpus, nil).RequestRefresh(context.Background(), "nope")

	s.True(errors.Is(err, domain.ErrUnknownSource))
}

func (s *DashboardTestSuite) TestFreshnessAndSnapshot() {
	s.tracker.MarkFailure("stocks", domain.NewNetworkError("stocks", errors.New("down")))
	_, err := s.snapshots.Fallback("stocks", domain.KindQuotes)
	s.Require().NoError(err)

	dash := s.dashboard(s.generator, s.corpus, nil)

	state, err := dash.Freshness("stocks")
	s.Require().NoError(err)
	s.False(state.Live)
	s.Equal("NetworkError", state.LastError)
	s.Len(dash.AllFreshness(), 2)

	entry, err := dash.Snapshot("stocks")
	s.Require().NoError(err)
	s.Equal(domain.OriginSeed, entry.Origin)
}

func (s *DashboardTestSuite) TestDeliver_SavesExportedFile() {
	ctx := context.Background()
	d := &domain.Digest{ProfileID: "cinema", Title: "T", GeneratedAt: s.now}
	s.saver.EXPECT().Save(ctx, gomock.Any(), d).DoAndReturn(
		func(_ context.Context, f export.File, _ *domain.Digest) error {
			s.Equal("newsletter-cinema-2026-01-05.txt", f.Name)
			return nil
		},
	)

	file, err := s.dashboard(s.generator, s.corpus, s.saver).Deliver(ctx, d)

	s.Require().NoError(err)
	s.Equal("newsletter-cinema-2026-01-05.txt", file.Name)
}

func (s *DashboardTestSuite) TestDeliver_SaverError() {
	ctx := context.Background()
	d := &domain.Digest{ProfileID: "cinema", GeneratedAt: s.now}
	s.saver.EXPECT().Save(ctx, gomock.Any(), d).Return(errors.New("disk full"))

	file, err := s.dashboard(s.generator, s.corpus, s.saver).Deliver(ctx, d)

	s.Require().Error(err)
	s.Contains(err.Error(), "disk full")
	s.NotEmpty(file.Body)
}

func (s *DashboardTestSuite) TestExportText() {
	d := &domain.Digest{ProfileID: "cinema", Title: "SATELLIFACTS | CINÉMA", GeneratedAt: s.now}

	dash := s.dashboard(s.generator, s.corpus, nil)

	s.Contains(dash.ExportText(d), "SATELLIFACTS | CINÉMA")
	s.Equal(dash.ExportText(d), string(dash.ExportFile(d).Body))
}

func (s *DashboardTestSuite) TestContentPicks() {
	items := []domain.ContentItem{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	s.corpus.EXPECT().ByLanguage("fr").Return(items)

	got, err := s.dashboard(s.generator, s.corpus, nil).ContentPicks(2)

	s.Require().NoError(err)
	s.Equal(items[:2], got)
}

func (s *DashboardTestSuite) TestContentPicks_ModuleDisabled() {
	s.cfg.LinkedIn = false

	_, err := s.dashboard(s.generator, s.corpus, nil).ContentPicks(5)

	s.True(errors.Is(err, domain.ErrModuleDisabled))
}

func (s *DashboardTestSuite) TestProfilesReturnsCopy() {
	dash := s.dashboard(s.generator, s.corpus, nil)

	profiles := dash.Profiles()
	profiles[0].Name = "changed"

	s.NotEqual("changed", dash.Profiles()[0].Name)
	s.Len(profiles, 6)
}
