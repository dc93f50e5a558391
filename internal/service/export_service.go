package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"wedding-planner/backend/internal/model"
	"wedding-planner/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoGuests     = errors.New("暂无宾客可导出")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response。
type ExportService interface {
	// ExportGuestList 导出全部宾客清单为 Excel
	ExportGuestList(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportGuestList — 导出宾客清单为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "宾客清单"
//   - 列：姓名 | 邮箱 | 家庭/分组 | 人数 | 回复状态 | 饮食禁忌 | 餐桌 | 回复时间
//   - 排序沿用列表接口：姓氏 + 名字

func (s *exportService) ExportGuestList(ctx context.Context) (*bytes.Buffer, string, error) {
	guests, err := s.repo.Guest.ListAll(ctx)
	if err != nil {
		s.logger.Error("查询宾客失败", zap.Error(err))
		return nil, "", err
	}
	if len(guests) == 0 {
		return nil, "", ErrExportNoGuests
	}

	statusNames := map[model.RsvpStatus]string{
		model.StatusPending:   "待回复",
		model.StatusConfirmed: "确认出席",
		model.StatusDeclined:  "婉拒",
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "宾客清单"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 设置列宽
	widths := map[string]float64{
		"A": 18, "B": 28, "C": 16, "D": 8, "E": 12, "F": 28, "G": 16, "H": 20,
	}
	for col, w := range widths {
		f.SetColWidth(sheetName, col, col, w)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	headers := []string{"姓名", "邮箱", "家庭/分组", "人数", "回复状态", "饮食禁忌", "餐桌", "回复时间"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheetName, "A1", cell(colName(len(headers)-1), 1), headerStyle)

	// 数据行
	row := 2
	for i := range guests {
		g := &guests[i]
		f.SetCellValue(sheetName, cell("A", row), g.FullName())
		f.SetCellValue(sheetName, cell("B", row), g.Email)
		f.SetCellValue(sheetName, cell("C", row), g.GroupFamily)
		f.SetCellValue(sheetName, cell("D", row), g.NumberOfPeople)
		f.SetCellValue(sheetName, cell("E", row), statusNames[g.Status])
		f.SetCellValue(sheetName, cell("F", row), g.DietaryRestrictions)
		if g.Table != nil {
			f.SetCellValue(sheetName, cell("G", row), g.Table.Name)
		}
		if g.RespondedAt != nil {
			f.SetCellValue(sheetName, cell("H", row), g.RespondedAt.Format("2006-01-02 15:04"))
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("宾客清单_%s.xlsx", time.Now().Format("20060102"))
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
