// Package prompt builds the messages sent to the completion endpoint for a
// physics problem description.
package prompt

import (
	"errors"
	"strings"

	"github.com/physlab/problem-relay/internal/llm"
)

var ErrEmptyDescription = errors.New("problem description must not be empty")

// Category is a physics problem class the model is asked to choose from.
// Values outside the enumeration are passed through untouched.
type Category string

const (
	CategoryUniform       Category = "uniform"
	CategoryProjectile    Category = "projectile"
	CategoryCircular      Category = "circular"
	CategoryCollision     Category = "collision"
	CategoryMagnetic      Category = "magnetic"
	CategoryAstrodynamics Category = "astrodynamics"
)

// DefaultCategory is reported when the model omits the type field.
const DefaultCategory = CategoryUniform

var categories = []Category{
	CategoryUniform,
	CategoryProjectile,
	CategoryCircular,
	CategoryCollision,
	CategoryMagnetic,
	CategoryAstrodynamics,
}

func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) Known() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

const userPrefix = "请解析这个物理题目：\n\n"

var SystemPrompt = `你是一个物理题目参数提取专家。用户会输入物理题目描述，你需要识别题目类型并提取关键参数。

**支持的题型：**
1. uniform - 匀变速直线运动（自由落体、竖直上抛、匀加速直线等）
2. projectile - 平抛/抛体运动
3. circular - 圆周运动
4. collision - 碰撞与动量守恒
5. magnetic - 带电粒子在磁场中的运动
6. astrodynamics - 天体运动

**输出格式（严格 JSON）：**
{
  "type": "题型英文代码",
  "params": {
    "v0": 初始速度(m/s, 数字),
    "a": 加速度(m/s², 数字),
    "angle": 角度(度, 数字),
    "height": 高度(m, 数字),
    "radius": 半径(m, 数字),
    "mass": 质量(kg, 数字),
    "time": 时间(s, 数字)
  },
  "reasoning": "简短推理过程（可选）"
}
params 中只放数字，其他参数根据题型添加。

**提取规则：**
- 自由落体 → type: "uniform", v0: 0, a: 10（或题目给定的g值）
- 平抛 → type: "projectile", 水平初速度、高度
- 斜抛 → type: "projectile", 初速度、角度
- 竖直上抛 → type: "uniform", v0 > 0, a: -10
- 圆周运动 → type: "circular", 半径、角速度或线速度
- 如果题目没有明确给出某参数但可推理，请给出合理默认值
- 重力加速度默认 10 m/s²，除非题目特别说明

**示例：**
输入："一个小球从10米高处以5m/s的初速度水平抛出"
输出：{"type": "projectile", "params": {"speed": 5, "angle": 0, "height": 10}}

输入："自由落体运动，5秒后的速度和位移"
输出：{"type": "uniform", "params": {"v0": 0, "a": 10, "time": 5}}

**注意：只返回 JSON，不要添加任何解释文字。**`

// Prompt is the instruction/user pair for one completion call.
type Prompt struct {
	// Description is the trimmed caller input
	Description string
	System      string
	User        string
}

// Build trims the description and wraps it in the user template.
func Build(description string) (Prompt, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Prompt{}, ErrEmptyDescription
	}
	return Prompt{
		Description: description,
		System:      SystemPrompt,
		User:        userPrefix + description,
	}, nil
}

func (p Prompt) Messages() []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: p.System},
		{Role: llm.RoleUser, Content: p.User},
	}
}
