// Package shader holds the GLSL sources for the faulty-terminal effect
// and the marquee blit, as plain desktop GL 4.1 core strings.
package shader

const vertexShaderSource = `#version 410 core
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

// terminalFragmentSource is the full-screen "faulty terminal" effect:
// a rotated three-octave noise field drives a grid of digit cells,
// displaced by a flicker-gated glitch line, optionally barrel-distorted
// and chromatically split, with the rasterized logo strip composited
// into the top band.
const terminalFragmentSource = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;

uniform float iTime;
uniform vec3  iResolution;           // width, height, aspect
uniform float uScale;
uniform vec2  uGridMul;
uniform float uDigitSize;
uniform float uScanlineIntensity;
uniform float uGlitchAmount;
uniform float uFlickerAmount;
uniform float uNoiseAmp;
uniform float uChromaticAberration;  // in pixels
uniform float uDither;
uniform float uCurvature;
uniform vec3  uTint;
uniform vec2  uMouse;                // normalized, origin bottom-left
uniform float uMouseStrength;
uniform float uUseMouse;
uniform float uPageLoadProgress;
uniform float uUsePageLoadAnimation;
uniform float uBrightness;
uniform sampler2D uOverlayTex;
uniform float uOverlayHeight;        // band fraction of the frame height
uniform float uHasOverlay;

float hash21(vec2 p) {
    p = fract(p * vec2(234.34, 435.345));
    p += dot(p, p + 34.23);
    return fract(p.x * p.y);
}

float vnoise(vec2 p) {
    vec2 i = floor(p);
    vec2 f = fract(p);
    vec2 u = f * f * (3.0 - 2.0 * f);
    float a = hash21(i);
    float b = hash21(i + vec2(1.0, 0.0));
    float c = hash21(i + vec2(0.0, 1.0));
    float d = hash21(i + vec2(1.0, 1.0));
    return mix(mix(a, b, u.x), mix(c, d, u.x), u.y);
}

// Three octaves, each rotated and rescaled from the previous.
float layeredNoise(vec2 p) {
    const mat2 rot = mat2(0.8, 0.6, -0.6, 0.8);
    float v = 0.0;
    float amp = 0.55;
    for (int i = 0; i < 3; i++) {
        v += amp * vnoise(p);
        p = rot * p * 1.9 + vec2(3.7, 1.3);
        amp *= 0.5;
    }
    return v;
}

// Barrel distortion; identity when uCurvature is 0.
vec2 barrel(vec2 uv) {
    vec2 c = uv * 2.0 - 1.0;
    float r2 = dot(c, c);
    c *= 1.0 + uCurvature * r2;
    return c * 0.5 + 0.5;
}

// Horizontal displacement from a periodic vertical band gated by two
// offset sine waves thresholded against a constant.
float glitchShift(vec2 uv) {
    float band = sin(uv.y * 7.0 + iTime * 1.5) * sin(uv.y * 31.0 - iTime * 2.3);
    float gate = step(0.94 - uFlickerAmount * 0.25,
                      0.5 * sin(iTime * 9.7) + 0.5 * sin(iTime * 14.3 + 1.7));
    return band * gate * uGlitchAmount * 0.02;
}

// Brightness of the digit grid at one sample position.
float digits(vec2 uv) {
    vec2 gridUV = uv * uGridMul * uScale;
    vec2 cell = floor(gridUV);
    vec2 f = fract(gridUV) - 0.5;

    float n = layeredNoise(cell * 0.17 + vec2(iTime * 0.12, iTime * 0.07));
    n += (hash21(cell + floor(iTime * 8.0)) - 0.5) * uNoiseAmp * 0.4;

    // Rectangular cell falloff carves the dot-matrix look.
    vec2 box = abs(f) / uDigitSize;
    float falloff = max(box.x, box.y);
    float lit = n - falloff * 0.45;

    if (uUsePageLoadAnimation > 0.5) {
        float delay = hash21(cell * 1.7 + 11.0);
        float reveal = smoothstep(delay, delay + 0.35, uPageLoadProgress * 1.35);
        lit *= reveal;
    }
    return clamp(lit, 0.0, 1.0);
}

// 3x3 supersample average to soften cell aliasing.
float digitsAA(vec2 uv) {
    vec2 px = 1.0 / iResolution.xy;
    float sum = 0.0;
    for (int j = -1; j <= 1; j++) {
        for (int i = -1; i <= 1; i++) {
            sum += digits(uv + vec2(float(i), float(j)) * px * 0.66);
        }
    }
    return sum / 9.0;
}

float intensityAt(vec2 uv) {
    float v = digitsAA(uv);
    if (uUseMouse > 0.5) {
        vec2 asp = vec2(iResolution.z, 1.0);
        float d = length((uv - uMouse) * asp);
        float boost = exp(-d * 6.0);
        float ripple = sin(d * 28.0 - iTime * 5.0) * exp(-d * 4.0) * 0.25;
        v += (boost + ripple) * uMouseStrength * 0.35;
    }
    return v;
}

void main() {
    vec2 uv = barrel(frag_uv);
    uv.x += glitchShift(uv);

    float ca = uChromaticAberration / iResolution.x;
    float r = intensityAt(uv + vec2(ca, 0.0));
    float g = intensityAt(uv);
    float b = intensityAt(uv - vec2(ca, 0.0));
    vec3 col = vec3(r, g, b);

    // Scanlines ride on the distorted coordinates.
    float scan = 1.0 - uScanlineIntensity * (0.5 + 0.5 * sin(uv.y * iResolution.y * 3.14159));
    col *= scan;

    // Whole-frame flicker.
    col *= 1.0 - uFlickerAmount * 0.3 * hash21(vec2(iTime * 13.0, 7.0));

    // Overlay band at the top of the frame, flipped vertically to match
    // the rasterizer's row order and sharing the distorted coordinates.
    if (uHasOverlay > 0.5 && uOverlayHeight > 0.0 && uv.y > 1.0 - uOverlayHeight) {
        vec2 ouv = vec2(uv.x, (uv.y - (1.0 - uOverlayHeight)) / uOverlayHeight);
        ouv.y = 1.0 - ouv.y;
        vec4 overlay = texture(uOverlayTex, ouv);
        col = mix(col, overlay.rgb, overlay.a);
    }

    col *= uTint * uBrightness;

    if (uDither > 0.0) {
        col += (hash21(gl_FragCoord.xy + fract(iTime) * 100.0) - 0.5) * uDither * 0.04;
    }

    fragColor = vec4(col, 1.0);
}
`

// marqueeFragmentSource scrolls the rasterized strip across the window.
// The strip-space coordinate wraps against the sequence width, so one
// draw covers every tile; hover scaling resamples the hovered entry
// about its center and an optional fade dissolves the side edges.
const marqueeFragmentSource = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;

uniform sampler2D uStripTex;
uniform float uOffset;        // scroll offset, logical px
uniform float uSequenceWidth; // one-pass width, logical px
uniform vec2  uContainer;     // window size, logical px
uniform float uBandHeight;    // strip height, logical px
uniform vec3  uBgColor;
uniform vec3  uFadeColor;
uniform float uFadeWidth;     // fraction of container width, 0 disables
uniform vec2  uHoverSpan;     // hovered entry x-range in strip space
uniform float uHoverScale;    // 1 when nothing is hovered

void main() {
    vec2 px = frag_uv * uContainer;
    vec3 col = uBgColor;

    float bandTop = (uContainer.y + uBandHeight) * 0.5;
    float bandBot = (uContainer.y - uBandHeight) * 0.5;
    if (px.y >= bandBot && px.y <= bandTop && uSequenceWidth > 0.0) {
        float x = mod(px.x + uOffset, uSequenceWidth);
        float v = 1.0 - (px.y - bandBot) / uBandHeight;

        // Hover: expand the entry box and resample through its center.
        if (uHoverScale > 1.0) {
            float cx = 0.5 * (uHoverSpan.x + uHoverSpan.y);
            float hw = 0.5 * (uHoverSpan.y - uHoverSpan.x) * uHoverScale;
            if (abs(x - cx) < hw) {
                x = cx + (x - cx) / uHoverScale;
                v = 0.5 + (v - 0.5) / uHoverScale;
            }
        }

        vec4 strip = texture(uStripTex, vec2(x / uSequenceWidth, v));
        col = mix(uBgColor, strip.rgb, strip.a);
    }

    // Edge fade dissolves the whole frame toward the fade color.
    if (uFadeWidth > 0.0) {
        float fade = smoothstep(0.0, uFadeWidth, frag_uv.x) * smoothstep(0.0, uFadeWidth, 1.0 - frag_uv.x);
        col = mix(uFadeColor, col, fade);
    }

    fragColor = vec4(col, 1.0);
}
`

// VertexShader returns the shared full-screen quad vertex stage.
func VertexShader() string {
	return vertexShaderSource
}

// TerminalFragmentShader returns the procedural terminal effect stage.
func TerminalFragmentShader() string {
	return terminalFragmentSource
}

// MarqueeFragmentShader returns the standalone marquee blit stage.
func MarqueeFragmentShader() string {
	return marqueeFragmentSource
}
