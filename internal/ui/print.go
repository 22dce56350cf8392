package ui

import (
	"fmt"
	"io"
	"strings"

	"chef-express/internal/pkg/common"
)

// Ok 輸出成功訊息
func Ok(w io.Writer, msg string) {
	fmt.Fprintln(w, Success.Render(IconOk+msg))
}

// Warn 輸出警告訊息
func Warn(w io.Writer, msg string) {
	fmt.Fprintln(w, Warning.Render(IconWarn+msg))
}

// Err 輸出錯誤訊息
func Err(w io.Writer, msg string) {
	fmt.Fprintln(w, Error.Render(IconError+msg))
}

// Header 輸出區段標題
func Header(w io.Writer, s string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, Title.Render(s))
	fmt.Fprintln(w, Muted.Render(strings.Repeat("─", len([]rune(s))+2)))
}

// Kv 輸出對齊的鍵值
func Kv(w io.Writer, key, value string) {
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render(fmt.Sprintf("  %-10s", key)), ValueStyle.Render(value))
}

// Pantry 輸出冰箱清單
func Pantry(w io.Writer, items []common.Ingredient) {
	Header(w, fmt.Sprintf("My pantry (%d)", len(items)))
	if len(items) == 0 {
		fmt.Fprintln(w, Muted.Render("  Your pantry is empty. Add ingredients with `chefctl pantry add`."))
		return
	}
	for _, ing := range items {
		fmt.Fprintf(w, "  %s %s %s\n",
			Accent.Render(ing.Name),
			Muted.Render(IconDot+" you have:"),
			ing.RelativeQuantity,
		)
		fmt.Fprintf(w, "    %s\n", Muted.Render(ing.ID))
	}
}

// Ranking 輸出搜尋結果
func Ranking(w io.Writer, ranking common.Ranking) {
	if len(ranking.Results) == 0 {
		Warn(w, fmt.Sprintf("No recipes found with %d%% or more coverage.", ranking.MinCoverage))
		return
	}

	Header(w, fmt.Sprintf("Recipes (%d)", len(ranking.Results)))
	for _, r := range ranking.Results {
		fmt.Fprintf(w, "  %s %s %s\n",
			CoverageStyle(r.CoveragePercent).Render(r.CoverageLabel),
			Title.Render(r.Title),
			Muted.Render(IconDot+" "+r.TotalTime),
		)
		if len(r.MissingIngredients) > 0 {
			fmt.Fprintf(w, "    %s %s\n", Warning.Render("missing:"), common.StringSliceToString(r.MissingIngredients))
		}
		fmt.Fprintf(w, "    %s\n", Muted.Render("id: "+r.RecipeID))
	}
	if ranking.Skipped > 0 {
		fmt.Fprintln(w, Muted.Render(fmt.Sprintf("  (%d malformed recipes skipped)", ranking.Skipped)))
	}
}

// Recipe 輸出食譜詳細
func Recipe(w io.Writer, r *common.Recipe) {
	Header(w, r.Title)
	total := r.TotalTime
	if total == "" {
		total = "N/A"
	}
	Kv(w, "time", total)
	Kv(w, "tags", common.StringSliceToString(r.SearchTags))

	Header(w, "Ingredients")
	for _, line := range strings.Split(strings.TrimRight(common.FormatIngredients(r.Ingredients), "\n"), "\n") {
		if line != "" {
			fmt.Fprintln(w, "  "+line)
		}
	}

	Header(w, "Instructions")
	for i, step := range r.Instructions {
		fmt.Fprintf(w, "  %s %s\n", Accent.Render(fmt.Sprintf("%d.", i+1)), step)
	}
}
