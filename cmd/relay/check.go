package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/physlab/problem-relay/internal/client"
)

type sampleProblem struct {
	Name        string
	Description string
}

var sampleProblems = []sampleProblem{
	{Name: "自由落体", Description: "一个物体从10米高处自由下落，求5秒后的速度和位移"},
	{Name: "平抛运动", Description: "一个小球从5米高的平台以10m/s的初速度水平抛出，求落地时间和水平距离"},
	{Name: "斜抛运动", Description: "以20m/s的初速度与水平成45度角向上抛出一个物体"},
	{Name: "圆周运动", Description: "半径为2米的圆周运动，角速度为3 rad/s"},
	{Name: "碰撞", Description: "质量为2kg的物体以5m/s的速度与质量为3kg静止的物体发生弹性碰撞"},
	{Name: "复杂描述", Description: "在一次物理实验中，小明将一个质量为0.5kg的小球从楼顶竖直向上抛出，初速度是15m/s，重力加速度取9.8m/s²，求小球上升的最大高度和回到抛出点时的速度。"},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe a running relay with the sample problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		url, _ := cmd.Flags().GetString("url")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		out := cmd.OutOrStdout()

		c, err := client.NewClient(url, timeout)
		if err != nil {
			return err
		}

		health, err := c.Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("relay at %s is not reachable: %w", url, err)
		}
		fmt.Fprintf(out, "status: %s, api key configured: %t\n", health.Status, health.APIKeyConfigured)

		failed := 0
		for i, p := range sampleProblems {
			fmt.Fprintf(out, "\n%s\n[%d/%d] %s\n%s\n", strings.Repeat("─", 60), i+1, len(sampleProblems), p.Name, p.Description)

			res, err := c.ParseProblem(cmd.Context(), p.Description)
			if err != nil {
				failed++
				fmt.Fprintf(out, "  ✗ %v\n", err)
				continue
			}
			if res.Failure != nil {
				failed++
				fmt.Fprintf(out, "  ✗ HTTP %d: %s\n", res.StatusCode, res.Failure.Error)
				continue
			}

			params, _ := json.Marshal(res.Parsed.Params)
			fmt.Fprintf(out, "  ✓ type: %s\n    params: %s\n", res.Parsed.Type, params)
			if res.Parsed.Reasoning != "" {
				fmt.Fprintf(out, "    reasoning: %s\n", res.Parsed.Reasoning)
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d sample problems failed", failed, len(sampleProblems))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().String("url", "http://localhost:5000", "Base URL of the relay")
	checkCmd.Flags().Duration("timeout", 90*time.Second, "Per-request timeout")
}
