package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"tenantli-inspect/internal/domain"

	"go.uber.org/zap"
)

// ReportGetter defines the report orchestrator interface (for test mocking)
type ReportGetter interface {
	GetReportByUUID(ctx context.Context, uuid string) *domain.InspectionReport
}

// ReportHandler 查看器只读接口
type ReportHandler struct {
	reports ReportGetter
	logger  *zap.Logger
}

func NewReportHandler(reports ReportGetter, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, logger: logger}
}

// GetReport 按分享链接 UUID 返回组装好的报告
// 后端故障时返回占位报告（Error=true），HTTP 仍为 200：查看器必须总能渲染
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request, uuid string) {
	if uuid == "" {
		writeJSON(w, http.StatusBadRequest, Fail("report uuid is required"))
		return
	}

	report := h.reports.GetReportByUUID(r.Context(), uuid)
	writeJSON(w, http.StatusOK, Ok(report))
}

// ExportReport 导出报告为 Excel（对比视图每房间一行）
func (h *ReportHandler) ExportReport(w http.ResponseWriter, r *http.Request, uuid string) {
	if uuid == "" {
		writeJSON(w, http.StatusBadRequest, Fail("report uuid is required"))
		return
	}

	report := h.reports.GetReportByUUID(r.Context(), uuid)
	if report.Error {
		writeJSON(w, http.StatusServiceUnavailable, Fail("report is temporarily unavailable"))
		return
	}

	data, err := GenerateReportExport(report)
	if err != nil {
		h.logger.Error("Failed to generate report export",
			zap.String("uuid", uuid),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, Fail("failed to generate export"))
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="inspection-report-%s.xlsx"`, uuid))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
