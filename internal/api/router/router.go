package router

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"gorm.io/gorm"

	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/api/handler"
	"github.com/saniyaacharya04/Resume-Scanner-using-NLP/internal/scoring"
)

// RegisterRoutes 注册 API 路由
func RegisterRoutes(h *server.Hertz, scanHandler *handler.ScanHandler) {
	api := h.Group("/api/v1")

	// 单份简历同步评分
	api.POST("/score", func(c context.Context, ctx *app.RequestContext) {
		var req handler.ScoreRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体格式错误"})
			return
		}

		resp, err := scanHandler.ScoreSingle(c, req)
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	// 创建扫描批次
	api.POST("/batches", func(c context.Context, ctx *app.RequestContext) {
		var req handler.CreateBatchRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体格式错误"})
			return
		}

		resp, err := scanHandler.CreateBatch(c, req)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusCreated, resp)
	})

	// 批次内上传简历（支持多文件）
	api.POST("/batches/:batch_id/resumes", func(c context.Context, ctx *app.RequestContext) {
		batchID := ctx.Param("batch_id")

		form, err := ctx.MultipartForm()
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "解析multipart表单失败"})
			return
		}
		files := form.File["files"]
		if len(files) == 0 {
			if fileHeader, err := ctx.FormFile("file"); err == nil {
				files = append(files, fileHeader)
			}
		}
		if len(files) == 0 {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		accepted := make([]*handler.UploadResumeResponse, 0, len(files))
		for _, fileHeader := range files {
			file, err := fileHeader.Open()
			if err != nil {
				ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
				return
			}

			resp, err := scanHandler.UploadResume(c, batchID, fileHeader.Filename, file,
				fileHeader.Size, fileHeader.Header.Get("Content-Type"))
			file.Close()
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(consts.StatusNotFound, utils.H{"error": "批次不存在"})
					return
				}
				ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
				return
			}
			accepted = append(accepted, resp)
		}
		ctx.JSON(consts.StatusAccepted, utils.H{"batch_id": batchID, "accepted": accepted})
	})

	// 批次排名，支持过滤参数
	api.GET("/batches/:batch_id/ranking", func(c context.Context, ctx *app.RequestContext) {
		batchID := ctx.Param("batch_id")

		var filter scoring.FilterOptions
		if v := ctx.Query("min_score"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				filter.MinScore = f
			}
		}
		if v := ctx.Query("min_years"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				filter.MinYears = f
			}
		}
		if v := ctx.Query("max_years"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				filter.MaxYears = f
			}
		}
		if v := ctx.Query("education"); v != "" {
			filter.Education = strings.Split(v, ",")
		}

		resp, err := scanHandler.GetRanking(c, batchID, filter)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "批次不存在"})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	// 技能差距矩阵
	api.GET("/batches/:batch_id/skill-gap", func(c context.Context, ctx *app.RequestContext) {
		resp, err := scanHandler.GetSkillGap(c, ctx.Param("batch_id"))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "批次不存在"})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	// CSV报表导出
	api.GET("/batches/:batch_id/export/csv", func(c context.Context, ctx *app.RequestContext) {
		batchID := ctx.Param("batch_id")

		var buf bytes.Buffer
		if err := scanHandler.ExportCSV(c, batchID, &buf); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "批次不存在"})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}

		ctx.Header("Content-Disposition", `attachment; filename="ranking_`+batchID+`.csv"`)
		ctx.Data(consts.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
	})

	// 单份简历高亮预览
	api.GET("/batches/:batch_id/resumes/:filename/highlight", func(c context.Context, ctx *app.RequestContext) {
		intensity := ctx.Query("mode") == "intensity"
		resp, err := scanHandler.HighlightResume(c, ctx.Param("batch_id"), ctx.Param("filename"), intensity)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "批次或简历不存在"})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	// 批次内语义检索
	api.GET("/batches/:batch_id/search", func(c context.Context, ctx *app.RequestContext) {
		batchID := ctx.Param("batch_id")
		query := ctx.Query("q")
		topN := 0
		if v := ctx.Query("top_n"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				topN = n
			}
		}

		resp, err := scanHandler.SearchSimilar(c, batchID, query, topN)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(consts.StatusNotFound, utils.H{"error": "批次不存在"})
				return
			}
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	// 健康检查
	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		ctx.JSON(consts.StatusOK, utils.H{"status": "ok"})
	})
}
