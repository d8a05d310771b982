// Command practicectl maintains the practice library: single additions,
// bonus videos and bulk imports from CSV or XLSX. Video metadata (title,
// channel, duration) is resolved from YouTube so the curator only supplies
// the link and their own description.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	postgresStorage "github.com/strello4ka/yoga-daily-bot/internal/adapters/database/postgres"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/common/errorz"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/entity"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/service"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/utils/validator"
	"github.com/strello4ka/yoga-daily-bot/pkg/youtube"
)

const usage = `usage: practicectl <command> [flags]

commands:
  add         add a single practice (or a newbie curriculum entry)
  add-bonus   attach a bonus video to an existing practice
  import      bulk import from a CSV file (url;weekday;intensity;description)
  import-xlsx bulk import from an XLSX sheet (same columns)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	practices := newPracticeService()
	yt := youtube.NewClient()
	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "add":
		err = runAdd(ctx, practices, yt, os.Args[2:])
	case "add-bonus":
		err = runAddBonus(ctx, practices, yt, os.Args[2:])
	case "import":
		err = runImport(ctx, practices, yt, os.Args[2:], importCSV)
	case "import-xlsx":
		err = runImport(ctx, practices, yt, os.Args[2:], importXLSX)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "practicectl: %v\n", err)
		os.Exit(1)
	}
}

func newPracticeService() *service.PracticeService {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}

	dsn := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=disable",
		viper.GetString("service.database.user"),
		viper.GetString("service.database.password"),
		viper.GetString("service.database.name"),
		viper.GetString("service.database.host"),
		viper.GetInt("service.database.port"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect to the database: %v", err))
	}
	if err = db.AutoMigrate(postgresStorage.Migrations...); err != nil {
		panic(fmt.Sprintf("failed to migrate database: %v", err))
	}

	return service.NewPracticeService(
		postgresStorage.NewPracticeStorage(db),
		postgresStorage.NewBonusPracticeStorage(db),
		postgresStorage.NewNewbiePracticeStorage(db),
	)
}

func runAdd(ctx context.Context, practices *service.PracticeService, yt *youtube.Client, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	url := fs.String("url", "", "youtube link (required)")
	weekday := fs.Int("weekday", 0, "delivery weekday 1 (Monday) .. 7 (Sunday); 0 = any day")
	intensity := fs.String("intensity", "", "intensity label")
	curator := fs.String("curator", "", "curator description shown to users")
	newbie := fs.Int("newbie", 0, "curriculum position 1..28; adds to the newbie track instead")
	_ = fs.Parse(args)

	if !validator.YouTubeURL(*url, nil) {
		return fmt.Errorf("-url must be a youtube link, got %q", *url)
	}
	if *weekday < 0 || *weekday > 7 {
		return fmt.Errorf("-weekday must be 1..7 (or 0 for any day), got %d", *weekday)
	}
	if *newbie < 0 || *newbie > 28 {
		return fmt.Errorf("-newbie must be 1..28, got %d", *newbie)
	}

	info, err := fetchInfo(ctx, yt, *url)
	if err != nil {
		return err
	}

	if *newbie > 0 {
		created, err := practices.AddNewbie(ctx, entity.NewbiePractice{
			Number:             *newbie,
			Title:              info.Title,
			VideoURL:           *url,
			Duration:           info.Duration,
			ChannelName:        info.ChannelName,
			Description:        info.Description,
			CuratorDescription: *curator,
			Intensity:          *intensity,
		})
		if err != nil {
			return err
		}
		fmt.Printf("newbie practice %d added: #%d %q\n", created.Number, created.ID, created.Title)
		return nil
	}

	practice := entity.Practice{
		Title:              info.Title,
		VideoURL:           *url,
		Duration:           info.Duration,
		ChannelName:        info.ChannelName,
		Description:        info.Description,
		CuratorDescription: *curator,
		Intensity:          *intensity,
	}
	if *weekday != 0 {
		practice.Weekday = weekday
	}

	created, err := practices.Add(ctx, practice)
	if err != nil {
		return err
	}
	fmt.Printf("practice added: #%d %q (%d min)\n", created.ID, created.Title, created.Duration)
	return nil
}

func runAddBonus(ctx context.Context, practices *service.PracticeService, yt *youtube.Client, args []string) error {
	fs := flag.NewFlagSet("add-bonus", flag.ExitOnError)
	url := fs.String("url", "", "youtube link (required)")
	parent := fs.Uint("parent", 0, "parent practice id (required)")
	curator := fs.String("curator", "", "curator description shown to users")
	intensity := fs.String("intensity", "", "intensity label")
	_ = fs.Parse(args)

	if !validator.YouTubeURL(*url, nil) {
		return fmt.Errorf("-url must be a youtube link, got %q", *url)
	}
	if *parent == 0 {
		return errors.New("-parent is required")
	}

	info, err := fetchInfo(ctx, yt, *url)
	if err != nil {
		return err
	}

	created, err := practices.AddBonus(ctx, entity.BonusPractice{
		ParentPracticeID:   *parent,
		Title:              info.Title,
		VideoURL:           *url,
		Duration:           info.Duration,
		ChannelName:        info.ChannelName,
		Description:        info.Description,
		CuratorDescription: *curator,
		Intensity:          *intensity,
	})
	if err != nil {
		return err
	}
	fmt.Printf("bonus added to practice %d: #%d %q\n", *parent, created.ID, created.Title)
	return nil
}

// importRow is one row of a bulk import: url, weekday or curriculum number,
// intensity, curator description.
type importRow struct {
	url       string
	slot      int
	intensity string
	curator   string
}

func runImport(
	ctx context.Context,
	practices *service.PracticeService,
	yt *youtube.Client,
	args []string,
	read func(fs *flag.FlagSet, args []string) ([]importRow, error),
) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	newbie := fs.Bool("newbie", false, "rows fill the newbie curriculum: the slot column is the position 1..28")
	rows, err := read(fs, args)
	if err != nil {
		return err
	}

	var imported, skipped int
	for i, row := range rows {
		if err = importOne(ctx, practices, yt, row, *newbie); err != nil {
			skipped++
			fmt.Fprintf(os.Stderr, "row %d (%s): %v\n", i+1, row.url, err)
			continue
		}
		imported++
	}

	fmt.Printf("done: %d imported, %d skipped\n", imported, skipped)
	return nil
}

func importOne(ctx context.Context, practices *service.PracticeService, yt *youtube.Client, row importRow, newbie bool) error {
	if !validator.YouTubeURL(row.url, nil) {
		return fmt.Errorf("not a youtube link")
	}

	info, err := fetchInfo(ctx, yt, row.url)
	if err != nil {
		return err
	}

	if newbie {
		if row.slot < 1 || row.slot > 28 {
			return fmt.Errorf("curriculum position must be 1..28, got %d", row.slot)
		}
		_, err = practices.AddNewbie(ctx, entity.NewbiePractice{
			Number:             row.slot,
			Title:              info.Title,
			VideoURL:           row.url,
			Duration:           info.Duration,
			ChannelName:        info.ChannelName,
			Description:        info.Description,
			CuratorDescription: row.curator,
			Intensity:          row.intensity,
		})
		return err
	}

	if row.slot < 0 || row.slot > 7 {
		return fmt.Errorf("weekday must be 1..7 (or 0 for any day), got %d", row.slot)
	}
	practice := entity.Practice{
		Title:              info.Title,
		VideoURL:           row.url,
		Duration:           info.Duration,
		ChannelName:        info.ChannelName,
		Description:        info.Description,
		CuratorDescription: row.curator,
		Intensity:          row.intensity,
	}
	if row.slot != 0 {
		slot := row.slot
		practice.Weekday = &slot
	}

	if _, err = practices.Add(ctx, practice); err != nil {
		if errors.Is(err, errorz.ErrDuplicateURL) {
			return fmt.Errorf("already in the library")
		}
		return err
	}
	return nil
}

func importCSV(fs *flag.FlagSet, args []string) ([]importRow, error) {
	file := fs.String("file", "", "path to the CSV file (required)")
	_ = fs.Parse(args)

	f, err := os.Open(*file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1

	var rows []importRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row, ok := parseRow(record)
		if ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func importXLSX(fs *flag.FlagSet, args []string) ([]importRow, error) {
	file := fs.String("file", "", "path to the XLSX file (required)")
	sheet := fs.String("sheet", "Sheet1", "sheet name")
	_ = fs.Parse(args)

	f, err := excelize.OpenFile(*file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := f.GetRows(*sheet)
	if err != nil {
		return nil, err
	}

	var rows []importRow
	for _, record := range records {
		row, ok := parseRow(record)
		if ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// parseRow maps a raw record to an importRow. Header rows and rows without a
// link are skipped.
func parseRow(record []string) (importRow, bool) {
	if len(record) == 0 {
		return importRow{}, false
	}
	url := strings.TrimSpace(record[0])
	if url == "" || !strings.Contains(url, "://") {
		return importRow{}, false
	}

	row := importRow{url: url}
	if len(record) > 1 {
		row.slot, _ = strconv.Atoi(strings.TrimSpace(record[1]))
	}
	if len(record) > 2 {
		row.intensity = strings.TrimSpace(record[2])
	}
	if len(record) > 3 {
		row.curator = strings.TrimSpace(record[3])
	}
	return row, true
}

func fetchInfo(ctx context.Context, yt *youtube.Client, url string) (*youtube.VideoInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return yt.VideoInfo(ctx, url)
}
