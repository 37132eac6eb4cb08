package service

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// ==================== 配置合并 ====================
// 区块配置的浅合并规则：
//   - patch 里出现的键覆盖旧值
//   - patch 里没出现的键原样保留
//   - patch 里显式写 null 表示删除该键
// 纯函数，不碰存储，config 和 mobile_config 各自独立套用同一规则

// MergeConfig 对当前配置套用增量补丁，返回新 map，不修改入参
func MergeConfig(current, patch map[string]interface{}) map[string]interface{} {
	next := make(map[string]interface{}, len(current)+len(patch))
	for k, v := range current {
		next[k] = v
	}
	for k, v := range patch {
		if v == nil {
			// 显式 null 清除键
			delete(next, k)
			continue
		}
		next[k] = v
	}
	return next
}

// EffectiveConfig 计算渲染时的生效配置
// mobile 视口下，mobile_config 里出现的字段逐个覆盖 config，
// 没出现的字段回落到 config；mobile_config 为 nil 表示完全继承
func EffectiveConfig(config, mobileConfig map[string]interface{}, mobile bool) map[string]interface{} {
	if !mobile || mobileConfig == nil {
		out := make(map[string]interface{}, len(config))
		for k, v := range config {
			out[k] = v
		}
		return out
	}
	return MergeConfig(config, mobileConfig)
}

// DecodeConfig 把 jsonb 列解码成 map，空列按空 map 处理
func DecodeConfig(raw datatypes.JSON) (map[string]interface{}, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return map[string]interface{}{}, nil
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("配置 JSON 解析失败: %v", err)
	}
	if m == nil {
		m = map[string]interface{}{}
	}
	return m, nil
}

// DecodeOptionalConfig 解码可空的 jsonb 列
// 列未设置时返回 nil；列为 {} 时返回非 nil 空 map，两者语义不同
func DecodeOptionalConfig(raw datatypes.JSON) (map[string]interface{}, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	return DecodeConfig(raw)
}

// mergeJSONColumn 对 jsonb 列套用浅合并补丁，返回可回写的新列值
func mergeJSONColumn(raw datatypes.JSON, patch map[string]interface{}) (datatypes.JSON, error) {
	current, err := DecodeConfig(raw)
	if err != nil {
		return nil, err
	}
	return EncodeConfig(MergeConfig(current, patch))
}

// EncodeConfig 把 map 编码回 jsonb 列
func EncodeConfig(m map[string]interface{}) (datatypes.JSON, error) {
	if m == nil {
		m = map[string]interface{}{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("配置 JSON 序列化失败: %v", err)
	}
	return data, nil
}
