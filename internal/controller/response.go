package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storebuilder_v1_202608/internal/api/dto"
	"storebuilder_v1_202608/internal/model"
	"storebuilder_v1_202608/internal/service"
)

// ==================== 错误映射 ====================

// respondError 业务错误到 HTTP 状态码的统一映射
func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

// parseIDParam 解析路径参数中的 ID
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "无效的" + name})
		return 0, false
	}
	return id, true
}

// ==================== Model -> DTO 转换 ====================

func toStoreInfo(store *model.Store) *dto.StoreInfo {
	return &dto.StoreInfo{
		ID:               store.ID,
		Name:             store.Name,
		Subdomain:        store.Subdomain,
		BusinessType:     store.BusinessType,
		BusinessCategory: store.BusinessCategory,
		Status:           store.Status,
		CreatedAt:        store.CreatedAt,
		UpdatedAt:        store.UpdatedAt,
	}
}

func toPageInfo(page *model.Page, withSections bool) (*dto.PageInfo, error) {
	info := &dto.PageInfo{
		ID:             page.ID,
		StoreID:        page.StoreID,
		Title:          page.Title,
		Slug:           page.Slug,
		PageType:       string(page.PageType),
		IsPublished:    page.IsPublished,
		PublishedAt:    page.PublishedAt,
		ShowHeader:     page.ShowHeader,
		ShowFooter:     page.ShowFooter,
		SeoTitle:       page.SeoTitle,
		SeoDescription: page.SeoDescription,
		OgImageUrl:     page.OgImageUrl,
		CreatedAt:      page.CreatedAt,
		UpdatedAt:      page.UpdatedAt,
	}
	if withSections {
		info.Sections = make([]*dto.SectionInfo, 0, len(page.Sections))
		for i := range page.Sections {
			sectionInfo, err := toSectionInfo(&page.Sections[i])
			if err != nil {
				return nil, err
			}
			info.Sections = append(info.Sections, sectionInfo)
		}
	}
	return info, nil
}

func toSectionInfo(section *model.Section) (*dto.SectionInfo, error) {
	config, err := service.DecodeConfig(section.Config)
	if err != nil {
		return nil, fmt.Errorf("区块 %d 配置损坏: %w", section.ID, err)
	}
	// mobile_config 为 {} 时保留空对象：表示已开启覆写但尚未填字段，
	// 只有 null 才代表完全继承桌面端配置
	mobileConfig, err := service.DecodeOptionalConfig(section.MobileConfig)
	if err != nil {
		return nil, fmt.Errorf("区块 %d 移动端配置损坏: %w", section.ID, err)
	}
	return &dto.SectionInfo{
		ID:           section.ID,
		PageID:       section.PageID,
		Type:         string(section.SectionType),
		Name:         section.Name,
		IsVisible:    section.IsVisible,
		SortOrder:    section.SortOrder,
		Config:       config,
		MobileConfig: mobileConfig,
	}, nil
}

func toThemeInfo(theme *model.Theme) (*dto.ThemeInfo, error) {
	colors, err := service.DecodeConfig(theme.Colors)
	if err != nil {
		return nil, fmt.Errorf("主题 %d 配色损坏: %w", theme.ID, err)
	}
	typography, err := service.DecodeConfig(theme.Typography)
	if err != nil {
		return nil, fmt.Errorf("主题 %d 字体配置损坏: %w", theme.ID, err)
	}
	layout, err := service.DecodeConfig(theme.Layout)
	if err != nil {
		return nil, fmt.Errorf("主题 %d 布局配置损坏: %w", theme.ID, err)
	}
	return &dto.ThemeInfo{
		ID:         theme.ID,
		StoreID:    theme.StoreID,
		Name:       theme.Name,
		IsActive:   theme.IsActive,
		Colors:     colors,
		Typography: typography,
		Layout:     layout,
		CustomCSS:  theme.CustomCSS,
	}, nil
}

func toNavigationInfo(item *model.NavigationItem) *dto.NavigationItemInfo {
	info := &dto.NavigationItemInfo{
		ID:        item.ID,
		Label:     item.Label,
		Url:       item.Url,
		PageID:    item.PageID,
		Location:  string(item.Location),
		SortOrder: item.SortOrder,
	}
	for i := range item.Children {
		info.Children = append(info.Children, toNavigationInfo(&item.Children[i]))
	}
	return info
}

func toSettingsInfo(settings *model.HeaderFooterSettings) (*dto.SettingsInfo, error) {
	headerConfig, err := service.DecodeConfig(settings.HeaderConfig)
	if err != nil {
		return nil, fmt.Errorf("店铺 %d 页头配置损坏: %w", settings.StoreID, err)
	}
	footerConfig, err := service.DecodeConfig(settings.FooterConfig)
	if err != nil {
		return nil, fmt.Errorf("店铺 %d 页脚配置损坏: %w", settings.StoreID, err)
	}
	socialLinks, err := service.DecodeConfig(settings.SocialLinks)
	if err != nil {
		return nil, fmt.Errorf("店铺 %d 社交链接配置损坏: %w", settings.StoreID, err)
	}
	return &dto.SettingsInfo{
		StoreID:      settings.StoreID,
		HeaderConfig: headerConfig,
		FooterConfig: footerConfig,
		SocialLinks:  socialLinks,
	}, nil
}
