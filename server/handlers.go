package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rushteam/actireco/core"
	"github.com/rushteam/actireco/dataset"
	"github.com/rushteam/actireco/recommender"
)

func errorJSON(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{"status": "error", "detail": detail})
}

func (s *Server) handleHealth(c *gin.Context) {
	snap := s.rec.Artifacts().Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"artifact_version": snap.Version,
		"cf_available":     snap.HasCF(),
	})
}

func (s *Server) handleSentiment(c *gin.Context) {
	var req sentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	mood, err := s.rec.ClassifySentiment(c.Request.Context(), req.Text)
	if err != nil {
		// 情感分析不可用时降级为 neutral，端点本身不报错
		logrus.WithError(err).Warn("sentiment classify failed")
		mood = core.NeutralMood()
	}
	c.JSON(http.StatusOK, mood)
}

func (s *Server) handleRecommend(withMood bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req recommendRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errorJSON(c, http.StatusBadRequest, err.Error())
			return
		}
		if req.TopK == 0 {
			req.TopK = 5
		}
		// mood_text 只在 /recommend_with_mood 生效，且允许缺省（不做情感加权）
		if !withMood {
			req.MoodText = ""
		}

		resp, err := s.rec.Recommend(c.Request.Context(), recommender.Request{
			UserID:            req.UserID,
			TopK:              req.TopK,
			MoodText:          req.MoodText,
			City:              req.City,
			Tags:              req.Tags,
			Alpha:             req.Alpha,
			IncludeSeen:       req.IncludeSeen,
			InterestsOverride: req.Interests,
		})
		if err != nil {
			if core.IsInvalidInput(err) {
				errorJSON(c, http.StatusBadRequest, err.Error())
				return
			}
			logrus.WithError(err).Error("recommend failed")
			errorJSON(c, http.StatusInternalServerError, "internal error")
			return
		}

		s.metrics.ObserveRecommend(resp.CFUsed)

		if len(resp.Items) == 0 {
			errorJSON(c, http.StatusNotFound, "no recommendations available")
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (s *Server) handleLogInteraction(c *gin.Context) {
	var req interactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	err := s.rec.LogInteraction(c.Request.Context(), dataset.Interaction{
		UserID:     req.UserID,
		ActivityID: req.ActivityID,
		Event:      req.Event,
		Rating:     req.Rating,
	})
	if err != nil {
		if core.IsInvalidInput(err) {
			errorJSON(c, http.StatusBadRequest, err.Error())
			return
		}
		logrus.WithError(err).Error("log interaction failed")
		errorJSON(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleRetrainCF(c *gin.Context) {
	var req retrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	stats, err := s.rec.RetrainCF(c.Request.Context(), req.NFactors)
	if err != nil {
		if core.IsInvalidInput(err) {
			errorJSON(c, http.StatusBadRequest, err.Error())
			return
		}
		logrus.WithError(err).Error("retrain failed")
		errorJSON(c, http.StatusInternalServerError, "internal error")
		return
	}

	s.metrics.ObserveRetrain()
	c.JSON(http.StatusOK, gin.H{"status": "ok", "stats": stats})
}

// adminAuth 保护 /admin 端点：未配置密钥时整体关闭（503），密钥不匹配返回 403。
func (s *Server) adminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.app.AdminAPIKey == "" {
			errorJSON(c, http.StatusServiceUnavailable, "admin endpoints disabled")
			c.Abort()
			return
		}
		if c.GetHeader("X-API-Key") != s.app.AdminAPIKey {
			errorJSON(c, http.StatusForbidden, "invalid api key")
			c.Abort()
			return
		}
		c.Next()
	}
}
