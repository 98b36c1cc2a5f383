package tests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/jstittsworth/ffb-trends/internal/nfl"
	"github.com/jstittsworth/ffb-trends/internal/scoring"
	"github.com/jstittsworth/ffb-trends/internal/services"
)

const identityHeader = "Player Id,Name,Position,Year,Season,Week,Game Date,Home or Away,Opponent,Outcome,Score,Games Played"

type TrendsIntegrationTestSuite struct {
	suite.Suite
	dataDir string
	files   map[string]string
	logger  *logrus.Logger
}

func (s *TrendsIntegrationTestSuite) SetupSuite() {
	s.logger = logrus.New()
	s.logger.SetLevel(logrus.PanicLevel)

	// Drew Brees: two scoring seasons, with a week-17 game and a
	// postseason game that default options must drop. The TD Passes
	// column never matches a scoring category and must stay inert.
	s.files = map[string]string{
		"Game_Logs_Quarterback.csv": identityHeader + `,Passing Yards,Passing Tds,Interceptions,Rushing Yards,TD Passes
2504775,"Brees, Drew",QB,2006,Regular Season,1,09/10,Away,CLE,W,19-14,1,2500,18,4,--,99
2504775,"Brees, Drew",QB,2006,Regular Season,2,09/17,Home,ATL,W,34-21,1,1500,12,6,--,99
2504775,"Brees, Drew",QB,2006,Regular Season,17,12/31,Home,CAR,L,21-31,1,400,4,0,--,99
2504775,"Brees, Drew",QB,2006,Postseason,19,01/13,Home,PHI,W,27-24,1,350,3,1,--,99
2504775,"Brees, Drew",QB,2007,Regular Season,1,09/06,Away,IND,L,10-41,1,3000,20,5,--,99
2504775,"Brees, Drew",QB,2007,Regular Season,2,09/16,Home,TEN,L,14-16,1,1333,8,2,10,99
9999,"Janikowski, Sebastian",QB,2006,Regular Season,1,09/10,Home,SD,W,27-0,1,100,1,0,--,99
`,
		"Game_Logs_Kickers.csv": identityHeader + `,FG 20,FG 30,Extra Point
1119,"Janikowski, Sebastian",K,2006,Regular Season,1,09/10,Home,SD,W,27-0,1,2,1,3
`,
		"Game_Logs_Wide_Receiver_and_Tight_End.csv": identityHeader + `,Receptions,Receiving Yards,Receiving TDs,Longest Reception
8861,"Moss, Randy",WR,2007,Regular Season,1,09/09,Away,NYJ,W,38-14,1,5,100,2,45T
8861,"Moss, Randy",WR,2007,Regular Season,2,09/16,Home,SD,W,38-14,1,3,50,1,22
`,
		"Game_Logs_Punters.csv":           identityHeader + ",Punts,Punting Yards\n",
		"Game_Logs_Runningback.csv":       identityHeader + ",Rushing Attempts,Rushing Yards,Rushing TDs\n",
		"Game_Logs_Defensive_Lineman.csv": identityHeader + ",Total Tackles,Sacks\n",
		"Game_Logs_Offensive_Line.csv":    identityHeader + ",Games Started\n",
		"Basic_Stats.csv": `Age,College,Current Status,Name,Number,Player Id,Position,Years Played
38,Purdue,Active,"Brees, Drew",9,2504775,QB,2001-2016
`,
	}

	s.dataDir = s.T().TempDir()
	for name, content := range s.files {
		s.Require().NoError(os.WriteFile(filepath.Join(s.dataDir, name), []byte(content), 0o644))
	}
}

func (s *TrendsIntegrationTestSuite) newRegistry(opts scoring.Options) *services.PlayerRegistry {
	registry := services.NewPlayerRegistry(nil, opts, s.logger)
	s.Require().NoError(registry.LoadGameLogs(s.dataDir))
	return registry
}

func (s *TrendsIntegrationTestSuite) TestPointsWithDefaultOptions() {
	registry := s.newRegistry(scoring.Options{})

	profile, err := registry.AddPlayer("Drew Brees")
	s.Require().NoError(err)

	s.Equal("quarterbacks", profile.SourceTable)
	s.Equal("Brees, Drew", profile.NormalizedName)
	s.Require().Len(profile.Series, 2)
	s.Equal(2006, profile.Series[0].Year)
	s.InDelta(270.0, profile.Series[0].Points, 1e-9)
	s.Equal(2007, profile.Series[1].Year)
	s.InDelta(279.32, profile.Series[1].Points, 1e-9)
}

func (s *TrendsIntegrationTestSuite) TestPointsIncludingPostseason() {
	registry := s.newRegistry(scoring.Options{IncludePostseason: true})

	profile, err := registry.AddPlayer("Drew Brees")
	s.Require().NoError(err)

	s.Require().Len(profile.Series, 2)
	s.InDelta(295.0, profile.Series[0].Points, 1e-9)
}

func (s *TrendsIntegrationTestSuite) TestTablePriorityPrefersKickers() {
	registry := s.newRegistry(scoring.Options{})

	profile, err := registry.AddPlayer("Sebastian Janikowski")
	s.Require().NoError(err)

	s.Equal("kickers", profile.SourceTable)
	s.Require().Len(profile.Series, 1)
	s.InDelta(12.0, profile.Series[0].Points, 1e-9)
}

func (s *TrendsIntegrationTestSuite) TestRosterEnrichment() {
	registry := s.newRegistry(scoring.Options{})

	brees, err := registry.AddPlayer("Drew Brees")
	s.Require().NoError(err)
	s.Require().NotNil(brees.Bio)
	s.Equal("2504775", brees.Bio.PlayerID)
	s.Equal("QB", brees.Bio.Position)
	s.Equal("9", brees.Bio.Number)
	s.Equal("Active", brees.Bio.CurrentStatus)
	s.Equal("2001-2016", brees.Bio.YearsPlayed)

	moss, err := registry.AddPlayer("Randy Moss")
	s.Require().NoError(err)
	s.Nil(moss.Bio)
}

func (s *TrendsIntegrationTestSuite) TestDuplicateAddAndRemove() {
	registry := s.newRegistry(scoring.Options{})

	first, err := registry.AddPlayer("Drew Brees")
	s.Require().NoError(err)
	second, err := registry.AddPlayer("drew brees")
	s.Require().NoError(err)

	s.Equal(first.ID, second.ID)
	s.Len(registry.GetPlayers(), 1)

	s.True(registry.RemovePlayer("Drew Brees"))
	s.Empty(registry.GetPlayers())
	s.False(registry.RemovePlayer("Drew Brees"))
}

func (s *TrendsIntegrationTestSuite) TestMixedBatchAdd() {
	registry := s.newRegistry(scoring.Options{})

	profiles, err := registry.AddPlayers([]string{"Drew Brees", "Prince", "Jane Nobody"})

	s.Len(profiles, 1)
	s.Require().Error(err)
	s.ErrorIs(err, nfl.ErrInvalidPlayerName)
	s.ErrorIs(err, nfl.ErrPlayerNotFound)
}

func (s *TrendsIntegrationTestSuite) TestChangeScoringRulesRecomputes() {
	registry := s.newRegistry(scoring.Options{})

	_, err := registry.AddPlayer("Drew Brees")
	s.Require().NoError(err)

	s.Require().NoError(registry.ChangeScoringRules(scoring.NewRules(map[string]float64{
		"passing_yards": 0.1,
	})))

	players := registry.GetPlayers()
	s.Require().Len(players, 1)
	// 4000 yards at the richer weight: 400 + 120 - 10
	s.InDelta(510.0, players[0].Series[0].Points, 1e-9)
}

func (s *TrendsIntegrationTestSuite) TestRenderTrendChart() {
	registry := s.newRegistry(scoring.Options{})
	chartPath := filepath.Join(s.T().TempDir(), "trend.png")

	s.Require().NoError(registry.RenderTrends([]string{"Drew Brees", "Randy Moss"}, chartPath))

	info, err := os.Stat(chartPath)
	s.Require().NoError(err)
	s.Greater(info.Size(), int64(0))
	s.Len(registry.GetPlayers(), 2)
}

func (s *TrendsIntegrationTestSuite) TestSummaries() {
	registry := s.newRegistry(scoring.Options{})

	summaries, err := registry.Summaries([]string{"Drew Brees"})
	s.Require().NoError(err)
	s.Require().Len(summaries, 1)

	summary := summaries[0]
	s.Equal("Drew Brees", summary.Player)
	s.Equal(2, summary.Seasons)
	s.Equal(2007, summary.BestYear)
	s.InDelta(279.32, summary.BestPoints, 1e-9)
	s.InDelta(549.32, summary.TotalPoints, 1e-9)
	s.InDelta(9.32, summary.PointsPerYear, 1e-9)
}

func (s *TrendsIntegrationTestSuite) TestMissingGameLogFile() {
	partial := s.T().TempDir()
	for name, content := range s.files {
		if name == "Game_Logs_Punters.csv" {
			continue
		}
		s.Require().NoError(os.WriteFile(filepath.Join(partial, name), []byte(content), 0o644))
	}

	registry := services.NewPlayerRegistry(nil, scoring.Options{}, s.logger)
	err := registry.LoadGameLogs(partial)
	s.Require().Error(err)
	s.ErrorIs(err, nfl.ErrMissingFile)
}

func TestTrendsIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TrendsIntegrationTestSuite))
}
