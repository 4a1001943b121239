package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rushteam/actireco/core"
)

// errEmptyCSV 标记连表头都没有的文件。对可选文件等同于空数据集。
var errEmptyCSV = errors.New("empty csv")

// 约定文件名，与训练脚本保持一致。
const (
	ActivitiesFile   = "activities.csv"
	InteractionsFile = "interactions.csv"
	UsersFile        = "users.csv"
)

// Load 从 dataDir 加载整个数据集。
// activities.csv 缺失是致命错误（没有候选集无法服务）；
// interactions.csv / users.csv 缺失则按空数据处理（纯冷启动场景）。
func Load(dataDir string) (*Dataset, error) {
	activities, err := LoadActivities(filepath.Join(dataDir, ActivitiesFile))
	if err != nil {
		return nil, err
	}

	interactions, err := LoadInteractions(filepath.Join(dataDir, InteractionsFile))
	if err != nil && !optionalMissing(err) {
		return nil, err
	}

	users, err := LoadUsers(filepath.Join(dataDir, UsersFile))
	if err != nil && !optionalMissing(err) {
		return nil, err
	}
	if users == nil {
		users = make(map[string]User)
	}

	return &Dataset{
		Activities:   activities,
		Interactions: interactions,
		Users:        users,
	}, nil
}

// optionalMissing 判断可选文件的两种"无数据"情况：文件不存在或零字节。
func optionalMissing(err error) bool {
	return os.IsNotExist(underlying(err)) || errors.Is(err, errEmptyCSV)
}

func underlying(err error) error {
	type unwrapper interface{ Unwrap() error }
	for {
		u, ok := err.(unwrapper)
		if !ok {
			return err
		}
		err = u.Unwrap()
	}
}

// LoadActivities 读取 activities.csv（列：activity_id,title,tags,city）。
func LoadActivities(path string) ([]Activity, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeNotFound,
			fmt.Sprintf("dataset: load activities: %v", err))
	}

	out := make([]Activity, 0, len(rows))
	for _, row := range rows {
		a := Activity{
			ID:    field(row, header, "activity_id"),
			Title: field(row, header, "title"),
			Tags:  parseTags(field(row, header, "tags")),
			City:  strings.ToLower(strings.TrimSpace(field(row, header, "city"))),
		}
		if a.ID == "" {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// LoadInteractions 读取 interactions.csv（列：user_id,activity_id,event,rating）。
func LoadInteractions(path string) ([]Interaction, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: load interactions: %w", err)
	}

	out := make([]Interaction, 0, len(rows))
	for _, row := range rows {
		it := Interaction{
			UserID:     field(row, header, "user_id"),
			ActivityID: field(row, header, "activity_id"),
			Event:      field(row, header, "event"),
			Rating:     parseRating(field(row, header, "rating")),
		}
		if it.UserID == "" || it.ActivityID == "" {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

// LoadUsers 读取 users.csv（列：user_id,interests），按 user_id 索引。
func LoadUsers(path string) (map[string]User, error) {
	rows, header, err := readCSV(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: load users: %w", err)
	}

	out := make(map[string]User, len(rows))
	for _, row := range rows {
		u := User{
			ID:        field(row, header, "user_id"),
			Interests: field(row, header, "interests"),
		}
		if u.ID == "" {
			continue
		}
		out[u.ID] = u
	}
	return out, nil
}

// AppendInteraction 把一条交互追加到 interactions.csv；文件不存在时先写表头。
// 这是服务端唯一的数据集写路径（log_interaction）。
func AppendInteraction(path string, it Interaction) error {
	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("dataset: open interactions: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write([]string{"user_id", "activity_id", "event", "rating"}); err != nil {
			return err
		}
	}
	rating := ""
	if it.Rating != nil {
		rating = strconv.FormatFloat(*it.Rating, 'f', -1, 64)
	}
	if err := w.Write([]string{it.UserID, it.ActivityID, it.Event, rating}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// readCSV 读取整个 CSV，返回数据行与 header 列名到下标的映射。
func readCSV(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	headerRow, err := r.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("%w: %s", errEmptyCSV, path)
	}
	if err != nil {
		return nil, nil, err
	}

	header := make(map[string]int, len(headerRow))
	for i, name := range headerRow {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

func field(row []string, header map[string]int, name string) string {
	idx, ok := header[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
