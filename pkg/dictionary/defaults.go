package dictionary

// Default returns the built-in dictionary: trading and machine-learning
// concept topics, plus the marker sets and rating thresholds. Used when
// no config file is present, and as the template written by init-config.
func Default() *Dictionary {
	return &Dictionary{
		Categories: map[string]map[string][]string{
			"trading": {
				"entries":     {"entry signal", "entry point", "buy signal", "sell signal", "trigger", "setup"},
				"exits":       {"stop loss", "take profit", "exit strategy", "trailing stop", "profit target", "cut losses"},
				"risk":        {"position size", "risk management", "drawdown", "risk-reward", "kelly", "percent risk", "money management"},
				"backtesting": {"backtest", "historical test", "walk-forward", "optimization", "overfitting", "in-sample", "out-of-sample"},
				"metrics":     {"sharpe", "sortino", "expectancy", "win rate", "profit factor", "sqn", "r-multiple", "max drawdown"},
				"psychology":  {"discipline", "emotion", "bias", "mental", "cognitive", "psychology"},
			},
			"ml": {
				"supervised": {"classification", "regression", "labeled data", "supervised learning"},
				"features":   {"feature engineering", "feature selection", "feature importance", "lag features", "alpha factors"},
				"models":     {"random forest", "xgboost", "gradient boost", "neural network", "svm", "logistic regression"},
				"validation": {"cross-validation", "train test split", "overfitting", "k-fold", "purging", "walk-forward"},
				"metrics":    {"accuracy", "precision", "recall", "f1 score", "auc", "confusion matrix", "shap"},
			},
		},
		CodeMarkers: []string{
			"def ", "class ", "import ", "function", "#include", "```python", "return ",
		},
		FormulaMarkers: []string{
			`\frac`, `\sum`, `\int`, `\sigma`, `\begin{equation}`, "$$",
		},
		CriticalKeywords: []string{
			"key", "important", "critical", "must", "essential",
			"fundamental", "note that", "remember", "always", "never",
		},
		Rating: Thresholds{
			CoverageCuts:       []int{15, 30, 45, 60},
			SignalFractionCuts: []float64{0.15, 0.30},
			SentenceCuts:       []int{10, 20},
			BreadthCuts:        []int{4, 8},
		},
	}
}
