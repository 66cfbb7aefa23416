package notebook

import "fmt"

// BuildAnalysis assembles the boilerplate analysis notebook for a generated
// project. Section headers follow the standard write-up outline: summary,
// EDA, missing value treatment, modeling, conclusions. Code cells are
// placeholders calling straight into the analysis libraries; the generated
// project fills them in.
func BuildAnalysis(projectName, moduleName string) *Notebook {
	nb := New()

	nb.AddMarkdown(fmt.Sprintf("# %s\n\n## Summary\n\nDescribe the question this analysis answers, the data sources used and the headline findings.", projectName))

	nb.AddMarkdown("## Data Loading")
	nb.AddCode(fmt.Sprintf(`import numpy as np
import pandas as pd

from %s.data.make_dataset import preprocessing
from %s.utils.check_typo_errors import check_categories_proportion

df = pd.read_csv('../data/raw/dataset.csv')
df.head()`, moduleName, moduleName))

	nb.AddMarkdown("## Exploratory Data Analysis")
	nb.AddCode("df.info()")
	nb.AddCode("df.describe()")
	nb.AddCode("df.describe(include='object')")

	nb.AddMarkdown("## Missing Value Treatment")
	nb.AddCode("df.isna().sum()")
	nb.AddCode(`# Decide per column: drop, impute or flag.
# df = df.dropna(subset=[...])
# df[...] = df[...].fillna(df[...].median())`)

	nb.AddMarkdown("## Feature Engineering")
	nb.AddCode(`from sklearn.model_selection import train_test_split

train_df, test_df = train_test_split(df, test_size=0.2, random_state=42)
train_df, test_df = preprocessing(train_df, test_df, scaler_type='standard')`)

	nb.AddMarkdown("## Modeling")
	nb.AddCode(`from sklearn.ensemble import RandomForestClassifier
from sklearn.linear_model import LogisticRegression

model = LogisticRegression(max_iter=1000)
# model.fit(X_train, y_train)`)

	nb.AddMarkdown("## Evaluation")
	nb.AddCode(`from sklearn.metrics import classification_report

# print(classification_report(y_test, model.predict(X_test)))`)

	nb.AddMarkdown("## Conclusions\n\nSummarise findings, caveats and recommended next steps.")

	return nb
}
