// Package pipeline provides a framework for executing report steps in sequence.
//
// A jobreport run passes through these stages: loading the dataset,
// describing its numeric columns, aggregating the chart views, rendering
// the three charts and assembling the PDF report. Each stage is a Step that
// receives the current model.JobReport and adds its results to it.
//
// Steps communicate only through the report. The loaded table is shared by
// reference and never modified; chart steps record the image paths the PDF
// step later embeds, and the PDF step refuses to run unless every chart
// step has completed.
package pipeline
