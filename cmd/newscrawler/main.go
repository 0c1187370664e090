package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/polinsight/newscrawler/internal/config"
	"github.com/polinsight/newscrawler/internal/core"
	"github.com/polinsight/newscrawler/internal/crawlers"
	"github.com/polinsight/newscrawler/internal/models"
	"github.com/polinsight/newscrawler/internal/storage"
	"github.com/polinsight/newscrawler/internal/utils"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// 명령행 인자
var (
	// 전역 인자
	configFile string
	verbose    bool
	logLevel   string

	// 수집 인자
	publisherNames []string // 수집할 신문사 (비우면 설정의 활성 신문사 전체)
	publishersFile string   // 신문사 설정 파일 경로
	headless       bool
	maxSessions    int
	outputDir      string
	sinkType       string

	// 주기 실행 인자
	daemon       bool
	scheduleSpec string
)

var rootCmd = &cobra.Command{
	Use:   "newscrawler",
	Short: "정책 뉴스 수집기",
	Long: `newscrawler - 국내 주요 신문사의 당일 정책 뉴스 수집기

설정된 신문사의 카테고리를 순회하며 당일 게시된 기사를 수집해
CSV 또는 SQLite로 저장합니다. 지원:
  • 정적(HTTP) / 렌더링(브라우저) 수집 방식
  • 신문사별 독립 세션과 요청 간 랜덤 대기
  • 429 대응 재시도와 User-Agent 교체
  • 가용 자원 기반 동시 세션 제한
  • cron 표현식 기반 주기 실행

사용 예시:
  # 활성 신문사 전체를 한 번 수집
  newscrawler

  # 특정 신문사만 수집
  newscrawler -p 한국경제 -p 문화일보

  # 매시 정각 반복 수집 (데몬 모드)
  newscrawler --daemon

  # SQLite에 저장
  newscrawler --sink sqlite

버전: ` + Version + `
빌드 시각: ` + BuildTime,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		appConfig, err := core.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("설정 로드 실패: %w", err)
		}

		logConfig := utils.LogConfig{
			Level:      appConfig.Logging.Level,
			LogDir:     appConfig.Logging.LogDir,
			MaxSize:    appConfig.Logging.Rotation.MaxSize,
			MaxBackups: appConfig.Logging.Rotation.MaxBackups,
			MaxAge:     appConfig.Logging.Rotation.MaxAge,
			Compress:   appConfig.Logging.Rotation.Compress,
		}

		// 명령행 인자가 설정 파일보다 우선한다
		if logLevel != "" {
			logConfig.Level = logLevel
		}
		if verbose && logLevel == "" {
			logConfig.Level = "debug"
		}

		if err := utils.InitLogger(logConfig); err != nil {
			return fmt.Errorf("로그 초기화 실패: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ValidateFlags(publisherNames, sinkType, maxSessions, scheduleSpec); err != nil {
			return err
		}

		appConfig, err := core.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("설정 로드 실패: %w", err)
		}
		// --headless는 지정했을 때만 설정 파일 값을 덮는다
		var headlessFlag *bool
		if cmd.Flags().Changed("headless") {
			headlessFlag = &headless
		}
		appConfig.MergeCLIFlags(headlessFlag, outputDir, sinkType, logLevel)
		if maxSessions > 0 {
			appConfig.Crawl.MaxSessions = maxSessions
		}
		if publishersFile != "" {
			appConfig.Publishers.ConfigPath = publishersFile
		}
		if scheduleSpec != "" {
			appConfig.Schedule.Spec = scheduleSpec
		}

		// Ctrl+C 수신 시 진행 중인 수집을 정리하고 내려간다
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		targets, err := loadTargets(appConfig.Publishers.ConfigPath)
		if err != nil {
			return err
		}

		sink, err := storage.NewSink(appConfig.Sink.Type, appConfig.Output.BaseDir, appConfig.Sink.SQLitePath)
		if err != nil {
			return err
		}
		defer sink.Close()

		runOnce := func(ctx context.Context) {
			if err := crawlOnce(ctx, appConfig, targets, sink, !daemon); err != nil {
				utils.Errorf("수집 실행 실패: %v", err)
			}
		}

		if daemon {
			scheduler, err := core.NewScheduler(ctx, appConfig.Schedule.Spec, runOnce)
			if err != nil {
				return err
			}
			scheduler.Start()
			utils.Infof("데몬 모드로 동작 중 (spec: %s). Ctrl+C로 종료합니다", appConfig.Schedule.Spec)

			<-ctx.Done()
			scheduler.Stop()
			return nil
		}

		return crawlOnce(ctx, appConfig, targets, sink, true)
	},
}

// loadTargets 신문사 설정을 읽어 수집 대상을 결정
// -p 인자가 있으면 그 신문사만, 없으면 활성 신문사 전체를 대상으로 한다
func loadTargets(configPath string) ([]config.PublisherConfig, error) {
	loader := config.NewPublisherConfigLoader(configPath)
	set, err := loader.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("신문사 설정 로드 실패: %w", err)
	}

	if len(publisherNames) == 0 {
		targets := set.Enabled()
		if len(targets) == 0 {
			return nil, fmt.Errorf("활성화된 신문사가 없습니다: %s", configPath)
		}
		return targets, nil
	}

	targets := make([]config.PublisherConfig, 0, len(publisherNames))
	for _, name := range publisherNames {
		id, err := models.ParsePublisher(name)
		if err != nil {
			return nil, err
		}
		cfg, ok := set.Get(id)
		if !ok {
			return nil, fmt.Errorf("설정에 없는 신문사: %s", name)
		}
		targets = append(targets, *cfg)
	}
	return targets, nil
}

// crawlOnce 수집 1회 실행: 드라이버 구성 → 병렬 수집 → 저장 → 보고서
func crawlOnce(
	ctx context.Context,
	appConfig *core.Config,
	targets []config.PublisherConfig,
	sink storage.ArticleSink,
	interactive bool,
) error {
	runners := make([]core.PublisherRunner, 0, len(targets))
	for i := range targets {
		driver, err := crawlers.NewPublisherDriver(&targets[i], appConfig.Crawl)
		if err != nil {
			return fmt.Errorf("[%s] 드라이버 생성 실패: %w", targets[i].Name, err)
		}
		driver.OnArticle = func(record models.ArticleRecord) {
			utils.Debugf("[%s] 수집: %s (%s)", record.Publisher.Name(), record.Title, record.DateString)
		}
		runners = append(runners, driver)
	}

	gate := crawlers.NewSessionGate(crawlers.DefaultSessionGateConfig())
	utils.Debugf("CPU 사용률: %.1f%%, 허용 동시 세션: %d", gate.CPUUsage(), gate.MaxSessions())
	orchestrator := core.NewOrchestrator(appConfig.Crawl, runners, gate.MaxSessions)
	orchestrator.ShowProgress = interactive

	summary := orchestrator.Run(ctx)

	if err := sink.Save(summary); err != nil {
		return fmt.Errorf("수집 결과 저장 실패: %w", err)
	}

	reporter := utils.NewReporter(appConfig.Output.BaseDir)
	if path, err := reporter.SaveSummary(summary); err != nil {
		utils.Warnf("실행 보고서 저장 실패: %v", err)
	} else {
		utils.Infof("실행 보고서: %s", path)
	}
	reporter.LogSummary(summary)

	if interactive {
		printSummary(summary)
	}
	return nil
}

// printSummary 대화형 실행에서 수집 결과를 표준 출력으로 표시
func printSummary(summary *models.CrawlSummary) {
	fmt.Println("\n==================================================")
	fmt.Println("📊 수집 결과")
	fmt.Println("==================================================")
	for _, outcome := range summary.Outcomes {
		if outcome.Succeeded() {
			fmt.Printf("✅ %s: %d건 (%.1f초)\n", outcome.Publisher.Name(), len(outcome.Articles), outcome.Elapsed)
		} else {
			fmt.Printf("❌ %s: %s (수집분 %d건)\n", outcome.Publisher.Name(), outcome.ErrorMsg, len(outcome.Articles))
		}
	}
	fmt.Println("--------------------------------------------------")
	fmt.Printf("신문사: 성공 %d / 실패 %d\n", summary.SuccessCount, summary.FailedCount)
	fmt.Printf("기사: 총 %d건\n", summary.TotalArticles)
	fmt.Printf("소요 시간: %.1f초\n", summary.Elapsed)
	fmt.Println("==================================================")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 정보 표시",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("newscrawler %s\n", Version)
		fmt.Printf("빌드 시각: %s\n", BuildTime)
	},
}

var publishersCmd = &cobra.Command{
	Use:   "publishers",
	Short: "설정된 신문사 목록 표시",
	RunE: func(cmd *cobra.Command, args []string) error {
		appConfig, err := core.LoadConfig(configFile)
		if err != nil {
			return err
		}
		if publishersFile != "" {
			appConfig.Publishers.ConfigPath = publishersFile
		}

		loader := config.NewPublisherConfigLoader(appConfig.Publishers.ConfigPath)
		set, err := loader.LoadConfig()
		if err != nil {
			return err
		}

		for _, p := range set.Publishers {
			status := "활성"
			if !p.Enabled {
				status = "비활성"
			}
			categories := 0
			for _, c := range p.Categories {
				categories += len(c.Subs)
			}
			fmt.Printf("%-10s %s (%s, %s 방식, 하위 카테고리 %d개)\n",
				p.ID, p.Name, status, p.FetchMode, categories)
		}
		return nil
	},
}

func init() {
	// 전역 인자
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "설정 파일 경로")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "디버그 로그 출력")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "로그 레벨 (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&publishersFile, "publishers", "", "신문사 설정 파일 경로 (기본: "+config.DefaultConfigFile+")")

	// 수집 인자
	rootCmd.Flags().StringSliceVarP(&publisherNames, "publisher", "p", []string{}, "수집할 신문사 (식별자 또는 한글명, 여러 번 지정 가능)")
	rootCmd.Flags().BoolVar(&headless, "headless", true, "무표시 브라우저 모드")
	rootCmd.Flags().IntVar(&maxSessions, "max-sessions", 0, "동시 수집 세션 수 (0이면 가용 자원으로 산정)")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "출력 디렉터리 (기본: output)")
	rootCmd.Flags().StringVar(&sinkType, "sink", "", "저장 방식 (csv|sqlite|both)")

	// 주기 실행 인자
	rootCmd.Flags().BoolVar(&daemon, "daemon", false, "주기 실행 데몬 모드")
	rootCmd.Flags().StringVar(&scheduleSpec, "schedule", "", "cron 표현식 (기본: 매시 정각)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(publishersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "오류: %v\n", err)
		os.Exit(1)
	}
}
