package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendview/internal/expense"
	"github.com/MrJamesThe3rd/spendview/internal/export"
	"github.com/MrJamesThe3rd/spendview/internal/importer"
)

func TestParse_ExportRoundTrip(t *testing.T) {
	records := []expense.Record{
		{ID: 1, Amount: 12.5, Category: "Food", Date: "2024-03-05", Notes: `He said "hi"`},
		{ID: 2, Amount: 7, Category: "Food, drinks", Date: "2024-03-06", Notes: "line one\nline two"},
	}

	drafts, err := importer.Parse(strings.NewReader(export.ToCSV(records)))
	require.NoError(t, err)

	assert.Equal(t, []expense.Draft{
		{Amount: "12.50", Category: "Food", Date: "2024-03-05", Notes: `He said "hi"`},
		{Amount: "7.00", Category: "Food, drinks", Date: "2024-03-06", Notes: "line one\nline two"},
	}, drafts)
}

func TestParse(t *testing.T) {
	type testCase struct {
		name    string
		csv     string
		want    []expense.Draft
		wantErr string
	}

	tests := []testCase{
		{
			name: "HeaderAfterPreamble",
			csv:  "My expenses\n\nnotes,CATEGORY,amount,date\nbus,Transport,2.40,03/07/2024\n",
			want: []expense.Draft{
				{Amount: "2.40", Category: "Transport", Date: "2024-03-07", Notes: "bus"},
			},
		},
		{
			name: "SkipsBlankRows",
			csv:  "Date,Amount,Category\n2024-03-05,1,Food\n,,\n2024-03-06,2,Food\n",
			want: []expense.Draft{
				{Amount: "1", Category: "Food", Date: "2024-03-05"},
				{Amount: "2", Category: "Food", Date: "2024-03-06"},
			},
		},
		{
			name:    "NoHeader",
			csv:     "a,b,c\n1,2,3\n",
			wantErr: importer.ErrNoHeader.Error(),
		},
		{
			name:    "BadAmount",
			csv:     "Date,Amount,Category\n2024-03-05,1,Food\n2024-03-06,-4,Food\n",
			wantErr: "row 3: amount: invalid amount",
		},
		{
			name:    "BadDate",
			csv:     "Date,Amount,Category\n\n2024-02-30,1,Food\n",
			wantErr: "row 3: date: invalid date",
		},
		{
			name:    "MissingCategory",
			csv:     "Date,Amount,Category\n2024-03-05,1, \n",
			wantErr: "row 2: category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := importer.Parse(strings.NewReader(tt.csv))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Import(t *testing.T) {
	svc := importer.NewService()

	drafts, err := svc.Import(importer.SourceCGD, strings.NewReader("Data mov.;Descrição;Montante\n30-01-2026;CAFE;-3,20\n"))
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "3.2", drafts[0].Amount)

	drafts, err = svc.Import("", strings.NewReader("Date,Amount,Category\n2024-03-05,1,Food\n"))
	require.NoError(t, err)
	assert.Len(t, drafts, 1)

	_, err = svc.Import("ofx", strings.NewReader(""))
	assert.Error(t, err)
}
